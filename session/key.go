package session

import (
	"crypto/rand"
	"errors"
	"io"
)

const (
	generatedKeyLength = 64
	keyAlphabet        = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxKeyBytes bounds keys accepted from the outside. Keys travel in a
	// cookie header, so the ceiling tracks the 4 KB cookie limit minus
	// attribute overhead.
	maxKeyBytes = 4064
)

// ErrKeyInvalid is an exported constant or variable used by the
// authentication engine.
var ErrKeyInvalid = errors.New("session key invalid")

// Key is an opaque session identifier. It carries no claims and is
// meaningful only as a lookup handle into the session store.
type Key string

// Generate returns a fresh 64-character alphanumeric key from a
// cryptographic source. Generation never fails; an unreadable entropy
// source is unrecoverable and panics.
func Generate() Key {
	out := make([]byte, 0, generatedKeyLength)
	buf := make([]byte, generatedKeyLength)

	for len(out) < generatedKeyLength {
		if _, err := io.ReadFull(rand.Reader, buf); err != nil {
			panic("session: entropy source unavailable: " + err.Error())
		}
		for _, b := range buf {
			// Reject bytes above the largest multiple of 62 so every
			// alphabet character is equally likely.
			if b >= 248 {
				continue
			}
			out = append(out, keyAlphabet[int(b)%len(keyAlphabet)])
			if len(out) == generatedKeyLength {
				break
			}
		}
	}

	return Key(out)
}

// ParseKey validates raw as an externally supplied session key. It rejects
// empty input and anything beyond the cookie-sized ceiling before the
// value ever reaches the store. Content beyond the length bound is not
// inspected; a syntactically odd key simply misses in the store.
func ParseKey(raw string) (Key, error) {
	if raw == "" {
		return "", ErrKeyInvalid
	}
	if len(raw) > maxKeyBytes {
		return "", ErrKeyInvalid
	}

	return Key(raw), nil
}
