package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters — OWASP 2025 recommendation for interactive logins.
const (
	hashIterations  = 3
	hashMemoryKiB   = 64 * 1024 // 64 MiB
	hashParallelism = 1
	hashLength      = 32
	saltLength      = 16
)

// phcPartCount is the number of $-delimited parts in a PHC hash string.
const phcPartCount = 6

// ErrMalformedHash indicates a stored hash that is not a valid Argon2id
// PHC string. It signals data corruption, not a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword derives an Argon2id hash of the plaintext and encodes it as
// a self-describing PHC string ($argon2id$v=19$m=65536,t=3,p=1$<salt>$<hash>),
// so parameters can be tuned later without invalidating stored hashes.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	sum := argon2.IDKey([]byte(password), salt, hashIterations, hashMemoryKiB, hashParallelism, hashLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		hashMemoryKiB, hashIterations, hashParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	)
	return encoded, nil
}

// VerifyPassword reports whether the plaintext matches the stored PHC hash.
// The stored parameters are used for derivation, so hashes created under
// older settings keep verifying. An error means the hash itself is
// unreadable, never that the password was wrong.
func VerifyPassword(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != phcPartCount || parts[1] != "argon2id" {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, fmt.Errorf("%w: unsupported version %q", ErrMalformedHash, parts[2])
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false, fmt.Errorf("%w: bad parameters %q", ErrMalformedHash, parts[3])
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: undecodable salt", ErrMalformedHash)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("%w: undecodable digest", ErrMalformedHash)
	}

	candidate := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expected))) //nolint:gosec // G115: digest length always fits uint32

	return subtle.ConstantTimeCompare(expected, candidate) == 1, nil
}
