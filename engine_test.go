package sessauth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mreznik/sessauth/password"
)

type stubUserStore struct {
	records map[string]CredentialRecord
	err     error
}

func (s *stubUserStore) FindCredentials(ctx context.Context, identifier string) (CredentialRecord, error) {
	if s.err != nil {
		return CredentialRecord{}, s.err
	}
	record, ok := s.records[identifier]
	if !ok {
		return CredentialRecord{}, ErrUserNotFound
	}
	return record, nil
}

type testHarness struct {
	engine *Engine
	redis  *miniredis.Miniredis
	users  *stubUserStore
	userID uuid.UUID
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := DefaultConfig()
	cfg.Password.Memory = 8 * 1024
	cfg.Password.Time = 1
	cfg.Session.TTL = time.Minute

	users := &stubUserStore{records: map[string]CredentialRecord{}}

	engine, err := New().
		WithConfig(cfg).
		WithRedis(client).
		WithUserStore(users).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(engine.Close)

	userID := uuid.New()
	hash, err := engine.HashPassword(context.Background(), "Correct-Horse1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users.records["demo"] = CredentialRecord{UserID: userID, PasswordHash: hash}

	return &testHarness{engine: engine, redis: mr, users: users, userID: userID}
}

func TestLoginAndResolve(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	key, c, err := h.engine.Login(ctx, "demo", "Correct-Horse1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if len(key) != 64 {
		t.Fatalf("expected 64-character session key, got %d", len(key))
	}
	if c.UserID() != h.userID {
		t.Fatalf("unexpected user id %s", c.UserID())
	}

	resolved, err := h.engine.Resolve(ctx, string(key))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.UserID() != h.userID {
		t.Fatalf("resolved user %s, want %s", resolved.UserID(), h.userID)
	}
	if resolved.SessionKey() != key {
		t.Fatal("resolved ctx must carry the session key it came from")
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	if _, _, err := h.engine.Login(ctx, "demo", "Wrong-Horse1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := h.engine.Login(ctx, "ghost", "Correct-Horse1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUserStillVerifies(t *testing.T) {
	h := newTestHarness(t)

	// On the unknown-user path the hashing pool is the only step that
	// observes the context. A canceled context therefore surfaces the
	// context error if and only if the dummy verification was dispatched;
	// skipping it would short-circuit to ErrInvalidCredentials instead.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := h.engine.Login(ctx, "ghost", "Correct-Horse1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled from the verify step, got %v", err)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("unknown-user path returned before dispatching verification")
	}
}

func TestLoginUnknownUserPaysVerifyCost(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	// Both failure paths run a full Argon2 derivation, so the unknown-user
	// case must not be meaningfully faster than the wrong-password case.
	// Minimum over a few runs smooths scheduler noise; the bound is
	// generous because a skipped derivation is microseconds against
	// milliseconds.
	minElapsed := func(identifier string) time.Duration {
		best := time.Duration(1<<63 - 1)
		for i := 0; i < 3; i++ {
			start := time.Now()
			if _, _, err := h.engine.Login(ctx, identifier, "Wrong-Horse1"); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if elapsed := time.Since(start); elapsed < best {
				best = elapsed
			}
		}
		return best
	}

	known := minElapsed("demo")
	unknown := minElapsed("ghost")

	if unknown*10 < known {
		t.Fatalf("unknown-user login took %v, wrong-password login %v; missing account is distinguishable by timing", unknown, known)
	}
}

func TestLoginOversizedPasswordIsUniform(t *testing.T) {
	h := newTestHarness(t)

	long := strings.Repeat("a", password.DefaultMaxPasswordBytes+1)

	_, _, err := h.engine.Login(context.Background(), "demo", long)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for oversized password, got %v", err)
	}
}

func TestLoginUserStoreUnavailable(t *testing.T) {
	h := newTestHarness(t)

	h.users.err = errors.New("connection refused")

	_, _, err := h.engine.Login(context.Background(), "demo", "Correct-Horse1")
	if !errors.Is(err, ErrUserStoreUnavailable) {
		t.Fatalf("expected ErrUserStoreUnavailable, got %v", err)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("infrastructure failure must not be masked as a credential mismatch")
	}
}

func TestResolveSlidesExpiry(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	key, _, err := h.engine.Login(ctx, "demo", "Correct-Horse1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Each resolve within the TTL window pushes the deadline forward.
	h.redis.FastForward(45 * time.Second)
	if _, err := h.engine.Resolve(ctx, string(key)); err != nil {
		t.Fatalf("Resolve at 45s: %v", err)
	}

	h.redis.FastForward(45 * time.Second)
	if _, err := h.engine.Resolve(ctx, string(key)); err != nil {
		t.Fatalf("Resolve at 90s: %v", err)
	}

	// Past the idle window with no activity the session is gone.
	h.redis.FastForward(61 * time.Second)
	if _, err := h.engine.Resolve(ctx, string(key)); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after idle expiry, got %v", err)
	}
}

func TestResolveErrorTaxonomy(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	if _, err := h.engine.Resolve(ctx, ""); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("empty key: expected ErrTokenMalformed, got %v", err)
	}

	if _, err := h.engine.Resolve(ctx, "no-such-session"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("unknown key: expected ErrSessionNotFound, got %v", err)
	}

	// A session value that is not a user id fails ctx creation, not lookup.
	h.redis.Set("sess:corrupt-key", "not-a-uuid")
	if _, err := h.engine.Resolve(ctx, "corrupt-key"); !errors.Is(err, ErrCtxCreate) {
		t.Fatalf("corrupt payload: expected ErrCtxCreate, got %v", err)
	}

	h.redis.Set("sess:zero-key", uuid.Nil.String())
	if _, err := h.engine.Resolve(ctx, "zero-key"); !errors.Is(err, ErrCtxCreate) {
		t.Fatalf("zero user id: expected ErrCtxCreate, got %v", err)
	}

	h.redis.Close()
	if _, err := h.engine.Resolve(ctx, "any-key"); !errors.Is(err, ErrSessionAccess) {
		t.Fatalf("store down: expected ErrSessionAccess, got %v", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	key, c, err := h.engine.Login(ctx, "demo", "Correct-Horse1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := h.engine.Logout(ctx, c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := h.engine.Logout(ctx, c); err != nil {
		t.Fatalf("second Logout must succeed: %v", err)
	}

	if _, err := h.engine.Resolve(ctx, string(key)); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestHashPasswordEnforcesPolicy(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	if _, err := h.engine.HashPassword(ctx, "weakpass"); !errors.Is(err, ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy, got %v", err)
	}

	hash, err := h.engine.HashPassword(ctx, "Strong-Pass1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "" {
		t.Fatal("expected a PHC hash string")
	}
}

func TestMetricsCountOutcomes(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	key, c, err := h.engine.Login(ctx, "demo", "Correct-Horse1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	_, _, _ = h.engine.Login(ctx, "demo", "Wrong-Horse1")
	if _, err := h.engine.Resolve(ctx, string(key)); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := h.engine.Logout(ctx, c); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	snap := h.engine.MetricsSnapshot()
	expect := map[MetricID]uint64{
		MetricLoginSuccess:   1,
		MetricLoginFailure:   1,
		MetricSessionCreated: 1,
		MetricResolveSuccess: 1,
		MetricLogout:         1,
	}
	for id, want := range expect {
		if got := snap.Counters[id]; got != want {
			t.Fatalf("counter %d = %d, want %d", id, got, want)
		}
	}
}

func TestAuditEventsEmitted(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := DefaultConfig()
	cfg.Password.Memory = 8 * 1024
	cfg.Password.Time = 1
	cfg.Audit.DropIfFull = false

	sink := NewChannelSink(16)
	users := &stubUserStore{records: map[string]CredentialRecord{}}

	engine, err := New().
		WithConfig(cfg).
		WithRedis(client).
		WithUserStore(users).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(engine.Close)

	userID := uuid.New()
	hash, err := engine.HashPassword(context.Background(), "Correct-Horse1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users.records["demo"] = CredentialRecord{UserID: userID, PasswordHash: hash}

	ctx := WithClientIP(context.Background(), "192.0.2.7")
	if _, _, err := engine.Login(ctx, "demo", "Correct-Horse1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	select {
	case event := <-sink.Events():
		if event.EventType != EventLoginSuccess {
			t.Fatalf("expected %s first, got %s", EventLoginSuccess, event.EventType)
		}
		if event.UserID != userID.String() {
			t.Fatalf("unexpected user id %q", event.UserID)
		}
		if event.IP != "192.0.2.7" {
			t.Fatalf("expected client IP on event, got %q", event.IP)
		}
	case <-time.After(time.Second):
		t.Fatal("no audit event delivered")
	}
}

func TestBuilderValidation(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := &stubUserStore{}

	if _, err := New().WithUserStore(users).Build(); err == nil {
		t.Fatal("expected missing redis client to be rejected")
	}
	if _, err := New().WithRedis(client).Build(); err == nil {
		t.Fatal("expected missing user store to be rejected")
	}

	cfg := DefaultConfig()
	cfg.Session.TTL = 0
	if _, err := New().WithConfig(cfg).WithRedis(client).WithUserStore(users).Build(); err == nil {
		t.Fatal("expected non-positive TTL to be rejected")
	}

	b := New().WithRedis(client).WithUserStore(users)
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected reused builder to be rejected")
	}
}
