package password

import (
	"context"
	"errors"

	"golang.org/x/sync/semaphore"
)

// DefaultMaxConcurrent bounds simultaneous Argon2 derivations when the
// caller does not pick a limit. Each derivation pins Config.Memory KB and
// one CPU for its full duration.
const DefaultMaxConcurrent = 4

// Pool is the blocking-capable execution context for password hashing.
// Argon2id derivations take hundreds of milliseconds and pin memory for
// their full duration; Pool caps how many run at once so hashing load
// cannot starve request handling. Callers beyond the cap block until a
// slot frees (backpressure) or their context is canceled.
//
// Pool instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Pool struct {
	hasher *Argon2
	sem    *semaphore.Weighted
}

// NewPool wraps hasher with a concurrency bound of maxConcurrent
// simultaneous derivations. maxConcurrent <= 0 selects
// [DefaultMaxConcurrent].
func NewPool(hasher *Argon2, maxConcurrent int64) (*Pool, error) {
	if hasher == nil {
		return nil, errors.New("password pool requires a hasher")
	}
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}

	return &Pool{
		hasher: hasher,
		sem:    semaphore.NewWeighted(maxConcurrent),
	}, nil
}

// Hash acquires a derivation slot, then delegates to [Argon2.Hash].
// Blocks under load; returns the context error if ctx is canceled while
// waiting.
func (p *Pool) Hash(ctx context.Context, password string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)

	return p.hasher.Hash(password)
}

// Verify acquires a derivation slot, then delegates to [Argon2.Verify].
func (p *Pool) Verify(ctx context.Context, password, encodedHash string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.sem.Release(1)

	return p.hasher.Verify(password, encodedHash)
}

// NeedsUpgrade delegates to [Argon2.NeedsUpgrade]. Parsing is cheap and
// takes no slot.
func (p *Pool) NeedsUpgrade(encodedHash string) (bool, error) {
	return p.hasher.NeedsUpgrade(encodedHash)
}
