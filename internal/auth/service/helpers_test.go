package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/service"
	"github.com/akashhsiv/api-drf/internal/auth/store"
	"github.com/akashhsiv/api-drf/internal/auth/store/drivers/sqlite"
	"github.com/akashhsiv/api-drf/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTokenService(t *testing.T, s store.Store) *service.TokenService {
	t.Helper()
	signer, err := jwtx.NewHS256("service-test-secret", "test-issuer")
	require.NoError(t, err)
	return &service.TokenService{
		Signer:     signer,
		Store:      s,
		Issuer:     "test-issuer",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
}

// seedAdmin provisions a staff admin directly through the store and returns
// the matching actor.
func seedAdmin(t *testing.T, s store.Store) (domain.User, service.Actor) {
	t.Helper()
	ctx := context.Background()

	boot := &service.BootstrapService{Store: s}
	u, err := boot.CreateFirstAdmin(ctx, "Root Admin", "root@example.com", "rootpassword")
	require.NoError(t, err)

	return u, service.Actor{ID: u.ID, Role: domain.RoleAdmin, Superuser: u.Superuser}
}

func actorFor(t *testing.T, s store.Store, u domain.User) service.Actor {
	t.Helper()
	role, err := s.Roles().GetRoleByID(context.Background(), u.RoleID)
	require.NoError(t, err)
	return service.Actor{ID: u.ID, Role: role.Name, Superuser: u.Superuser}
}

// recordSender captures delivered reset codes for assertions.
type recordSender struct {
	mu    sync.Mutex
	codes map[string]string // email -> last code
}

func newRecordSender() *recordSender {
	return &recordSender{codes: map[string]string{}}
}

func (r *recordSender) SendResetCode(_ context.Context, email, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[email] = code
	return nil
}

func (r *recordSender) lastCode(email string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codes[email]
}
