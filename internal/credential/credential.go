// Package credential hashes and verifies user passwords.
//
// Stored form: base64(algorithm)$base64(iterations)$base64(salt)$base64(key).
// Every password gets a fixed pepper appended before derivation. The pepper is
// compiled in and shared by every install; rotating it invalidates all stored digests.
package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	Algorithm         = "pbkdf2_sha256"
	DefaultIterations = 260000
	MinIterations     = 1000
	saltLength        = 16
	keyLength         = 32
	separator         = "$"
	pepper            = "erp-ti::5f3c1a7e9d2b4c68"
)

var encoding = base64.StdEncoding

type Hasher struct {
	iterations int
}

func NewHasher(iterations int) *Hasher {
	if iterations < MinIterations {
		iterations = DefaultIterations
	}
	return &Hasher{iterations: iterations}
}

func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := derive(password, salt, h.iterations)

	return strings.Join([]string{
		encoding.EncodeToString([]byte(Algorithm)),
		encoding.EncodeToString([]byte(strconv.Itoa(h.iterations))),
		encoding.EncodeToString(salt),
		encoding.EncodeToString(key),
	}, separator), nil
}

// Verify never fails loudly: anything unparsable is simply a mismatch.
func (h *Hasher) Verify(password, encoded string) bool {
	d, ok := parse(encoded)
	if !ok {
		return false
	}
	got := derive(password, d.salt, d.iterations)
	return subtle.ConstantTimeCompare(got, d.key) == 1
}

// IsValidDigest reports whether encoded parses as a digest this package produced.
func (h *Hasher) IsValidDigest(encoded string) bool {
	_, ok := parse(encoded)
	return ok
}

type digest struct {
	iterations int
	salt       []byte
	key        []byte
}

func parse(encoded string) (digest, bool) {
	parts := strings.Split(strings.TrimSpace(encoded), separator)
	if len(parts) != 4 {
		return digest{}, false
	}

	alg, err := encoding.DecodeString(parts[0])
	if err != nil || string(alg) != Algorithm {
		return digest{}, false
	}

	rawIter, err := encoding.DecodeString(parts[1])
	if err != nil {
		return digest{}, false
	}
	iterations, err := strconv.Atoi(string(rawIter))
	if err != nil || iterations < MinIterations {
		return digest{}, false
	}

	salt, err := encoding.DecodeString(parts[2])
	if err != nil || len(salt) == 0 {
		return digest{}, false
	}

	key, err := encoding.DecodeString(parts[3])
	if err != nil || len(key) != keyLength {
		return digest{}, false
	}

	return digest{iterations: iterations, salt: salt, key: key}, true
}

func derive(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password+pepper), salt, iterations, keyLength, sha256.New)
}
