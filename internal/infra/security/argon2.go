package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Variant = "argon2id"
	argon2Version = "v=19"

	minArgon2Memory     = 8 * 1024
	minArgon2SaltLength = 8
	minArgon2KeyLength  = 16
)

var (
	errInvalidHashFormat = errors.New("argon2: invalid encoded hash format")
	errInvalidConfig     = errors.New("argon2: invalid configuration")
)

// Argon2Config defines tunable parameters for Argon2id password hashing.
type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func (c Argon2Config) validate() error {
	switch {
	case c.Memory < minArgon2Memory:
		return fmt.Errorf("%w: memory must be at least %d KiB", errInvalidConfig, minArgon2Memory)
	case c.Iterations == 0:
		return fmt.Errorf("%w: iterations must be positive", errInvalidConfig)
	case c.Parallelism == 0:
		return fmt.Errorf("%w: parallelism must be positive", errInvalidConfig)
	case c.SaltLength < minArgon2SaltLength:
		return fmt.Errorf("%w: salt must be at least %d bytes", errInvalidConfig, minArgon2SaltLength)
	case c.KeyLength < minArgon2KeyLength:
		return fmt.Errorf("%w: key must be at least %d bytes", errInvalidConfig, minArgon2KeyLength)
	}
	return nil
}

func (c Argon2Config) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, c.Iterations, c.Memory, c.Parallelism, c.KeyLength)
}

func (c Argon2Config) encode(salt, key []byte) string {
	return fmt.Sprintf("%s$%s$m=%d,t=%d,p=%d$%s$%s",
		argon2Variant, argon2Version,
		c.Memory, c.Iterations, c.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

var activeConfig atomic.Pointer[Argon2Config]

func init() {
	cfg := DefaultArgon2Config()
	activeConfig.Store(&cfg)
}

// DefaultArgon2Config returns the built-in Argon2id parameters.
func DefaultArgon2Config() Argon2Config {
	return Argon2Config{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// CurrentArgon2Config returns the currently active Argon2 configuration.
func CurrentArgon2Config() Argon2Config {
	return *activeConfig.Load()
}

// ConfigureArgon2 validates cfg and makes it the active hashing configuration.
func ConfigureArgon2(cfg Argon2Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	activeConfig.Store(&cfg)
	return nil
}

// HashPassword hashes the password with the active configuration and returns
// an encoded string embedding the parameters, salt, and derived key.
func HashPassword(password string) (string, error) {
	cfg := CurrentArgon2Config()

	salt := make([]byte, cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2: generate salt: %w", err)
	}

	return cfg.encode(salt, cfg.derive(password, salt)), nil
}

// VerifyPassword re-derives the key using the parameters embedded in encoded
// and compares it against the stored key in constant time. Empty inputs are
// treated as a mismatch rather than an error.
func VerifyPassword(password, encoded string) (bool, error) {
	if password == "" || encoded == "" {
		return false, nil
	}

	cfg, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidate := cfg.derive(password, salt)
	return subtle.ConstantTimeCompare(candidate, key) == 1, nil
}

func decodeHash(encoded string) (Argon2Config, []byte, []byte, error) {
	var cfg Argon2Config

	fields := strings.Split(encoded, "$")
	if len(fields) != 5 {
		return cfg, nil, nil, errInvalidHashFormat
	}
	variant, versionTag, params, b64Salt, b64Key := fields[0], fields[1], fields[2], fields[3], fields[4]

	if variant != argon2Variant || versionTag != argon2Version {
		return cfg, nil, nil, errInvalidHashFormat
	}

	if _, err := fmt.Sscanf(params, "m=%d,t=%d,p=%d", &cfg.Memory, &cfg.Iterations, &cfg.Parallelism); err != nil {
		return cfg, nil, nil, errInvalidHashFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(b64Salt)
	if err != nil {
		return cfg, nil, nil, errInvalidHashFormat
	}
	key, err := base64.RawStdEncoding.DecodeString(b64Key)
	if err != nil {
		return cfg, nil, nil, errInvalidHashFormat
	}

	cfg.SaltLength = uint32(len(salt))
	cfg.KeyLength = uint32(len(key))
	return cfg, salt, key, nil
}
