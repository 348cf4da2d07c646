package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// MaxPasswordLength bounds accepted passwords so a huge input cannot stall hashing.
const MaxPasswordLength = 1024

var (
	errEmptyPassword = errors.New("password cannot be empty")
	errLongPassword  = errors.New("password exceeds maximum length")
	errMalformedHash = errors.New("malformed password hash")
)

var b64 = base64.RawStdEncoding

// Params are the argon2id cost parameters recorded in every hash.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams sit at the low end of the argon2id recommendations; every
// seeded fixture user is hashed at startup.
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// HashPassword hashes password with DefaultParams.
func HashPassword(password string) (string, error) {
	return HashPasswordWith(password, DefaultParams)
}

// HashPasswordWith returns the PHC-format argon2id hash of password:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<key>
func HashPasswordWith(password string, p Params) (string, error) {
	switch {
	case password == "":
		return "", errEmptyPassword
	case len(password) > MaxPasswordLength:
		return "", errLongPassword
	}

	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	var b strings.Builder
	fmt.Fprintf(&b, "$argon2id$v=%d$m=%d,t=%d,p=%d$", argon2.Version, p.Memory, p.Iterations, p.Parallelism)
	b.WriteString(b64.EncodeToString(salt))
	b.WriteByte('$')
	b.WriteString(b64.EncodeToString(key))
	return b.String(), nil
}

// VerifyPassword reports whether password matches encoded. Malformed hashes
// and oversized passwords never match.
func VerifyPassword(encoded, password string) (bool, error) {
	if len(password) > MaxPasswordLength {
		return false, nil
	}

	p, salt, key, err := parseHash(encoded)
	if err != nil {
		//nolint:nilerr // a malformed hash is a mismatch, not a failure
		return false, nil
	}

	candidate := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

// parseHash splits a PHC argon2id string into its parameters, salt and key.
func parseHash(encoded string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, errMalformedHash
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return p, nil, nil, fmt.Errorf("%w: version %q", errMalformedHash, parts[2])
	}

	for _, field := range strings.Split(parts[3], ",") {
		name, raw, ok := strings.Cut(field, "=")
		if !ok {
			return p, nil, nil, errMalformedHash
		}
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return p, nil, nil, fmt.Errorf("%w: %s", errMalformedHash, field)
		}
		switch name {
		case "m":
			p.Memory = uint32(n)
		case "t":
			p.Iterations = uint32(n)
		case "p":
			if n == 0 || n > 255 {
				return p, nil, nil, errMalformedHash
			}
			p.Parallelism = uint8(n)
		default:
			return p, nil, nil, errMalformedHash
		}
	}
	if p.Iterations == 0 || p.Parallelism == 0 {
		return p, nil, nil, errMalformedHash
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt", errMalformedHash)
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: key", errMalformedHash)
	}

	//nolint:gosec // key length is bounded by the encoder
	p.SaltLength, p.KeyLength = uint32(len(salt)), uint32(len(key))
	return p, salt, key, nil
}
