package cryptox

import (
	"os"
	"strings"
	"sync"
)

// Argon2id parameters. These follow the OWASP minimum recommendation for
// the id variant.
const (
	saltLength  = 16
	iterations  = 3
	memory      = 64 * 1024
	parallelism = 2
	keyLength   = 32
)

var (
	pepperOnce sync.Once
	pepperPath string
	pepper     string
)

// SetPepperPath configures where the password pepper is read from. Must be
// called before the first hash/verify; later calls have no effect.
func SetPepperPath(path string) {
	pepperPath = path
}

// GetPepper lazily loads the pepper file. A missing or unreadable file
// yields an empty pepper, which keeps hashes valid but unpeppered; the
// deployment is expected to provision the file.
func GetPepper() string {
	pepperOnce.Do(func() {
		if pepperPath == "" {
			return
		}
		data, err := os.ReadFile(pepperPath)
		if err != nil {
			return
		}
		pepper = strings.TrimSpace(string(data))
	})
	return pepper
}
