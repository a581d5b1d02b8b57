package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/eventx"
	"github.com/aussiebroadwan/climblog/pkg/jwtx/jwtxtest"
	"github.com/aussiebroadwan/climblog/pkg/securestore"
	"github.com/aussiebroadwan/climblog/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *securestore.Memory
	count *securestore.Counting
	bus   *eventx.Bus
	mgr   *session.Manager
}

func newFixture(t *testing.T, opts ...session.Option) *fixture {
	t.Helper()

	f := &fixture{store: securestore.NewMemory(), bus: eventx.NewBus(nil)}
	f.count = securestore.NewCounting(f.store)
	f.mgr = session.New(f.count, f.bus, opts...)
	t.Cleanup(f.mgr.Close)
	return f
}

func TestStartsUnknown(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, session.StateUnknown, f.mgr.State())
	require.False(t, f.mgr.IsAuthenticated())

	select {
	case <-f.mgr.Ready():
		t.Fatal("ready before restore")
	default:
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		f := newFixture(t)
		require.Equal(t, session.StateUnauthenticated, f.mgr.Restore(ctx))
		require.Equal(t, "", f.mgr.Token())
		<-f.mgr.Ready()
	})

	t.Run("valid token", func(t *testing.T) {
		f := newFixture(t)
		token := jwtxtest.Valid(t, 12, "crimpy")
		require.NoError(t, f.store.Set(ctx, token))

		require.Equal(t, session.StateAuthenticated, f.mgr.Restore(ctx))
		s, ok := f.mgr.Session()
		require.True(t, ok)
		require.Equal(t, int64(12), s.UserID)
		require.Equal(t, "crimpy", s.Username)
		require.Equal(t, token, f.mgr.Token())
	})

	t.Run("expired token is deleted", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Set(ctx, jwtxtest.Expired(t, 12, "crimpy")))

		require.Equal(t, session.StateUnauthenticated, f.mgr.Restore(ctx))
		_, ok, err := f.store.Get(ctx)
		require.NoError(t, err)
		require.False(t, ok)
		require.Equal(t, int64(1), f.count.Deletes())
	})

	t.Run("token inside grace window is deleted", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Set(ctx, jwtxtest.Token(t, 1, "a", time.Now().Add(2*time.Second))))
		require.Equal(t, session.StateUnauthenticated, f.mgr.Restore(ctx))
	})

	t.Run("garbage token is deleted", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Set(ctx, "not.a.token"))
		require.Equal(t, session.StateUnauthenticated, f.mgr.Restore(ctx))

		_, ok, _ := f.store.Get(ctx)
		require.False(t, ok)
	})

	t.Run("read failure counts as signed out", func(t *testing.T) {
		f := newFixture(t)
		f.store.FailOn(securestore.OpGet, errors.New("keychain locked"))
		require.Equal(t, session.StateUnauthenticated, f.mgr.Restore(ctx))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and authenticates", func(t *testing.T) {
		f := newFixture(t)
		f.mgr.Restore(ctx)
		token := jwtxtest.Valid(t, 7, "slab")

		s, err := f.mgr.Login(ctx, token)
		require.NoError(t, err)
		require.Equal(t, int64(7), s.UserID)
		require.Equal(t, session.StateAuthenticated, f.mgr.State())

		stored, ok, err := f.store.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, token, stored)
	})

	t.Run("login before restore resolves ready", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.mgr.Login(ctx, jwtxtest.Valid(t, 7, "slab"))
		require.NoError(t, err)
		<-f.mgr.Ready()
	})

	t.Run("undecodable token", func(t *testing.T) {
		f := newFixture(t)
		f.mgr.Restore(ctx)

		_, err := f.mgr.Login(ctx, "garbage")
		require.ErrorIs(t, err, session.ErrDecode)
		require.Equal(t, session.StateUnauthenticated, f.mgr.State())
		require.Zero(t, f.count.Sets())
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)
		f.mgr.Restore(ctx)

		_, err := f.mgr.Login(ctx, jwtxtest.Expired(t, 7, "slab"))
		require.ErrorIs(t, err, session.ErrTokenExpired)
		require.Zero(t, f.count.Sets())
	})

	t.Run("storage failure keeps previous session", func(t *testing.T) {
		f := newFixture(t)
		first := jwtxtest.Valid(t, 1, "first")
		_, err := f.mgr.Login(ctx, first)
		require.NoError(t, err)

		f.store.FailOn(securestore.OpSet, errors.New("disk full"))
		_, err = f.mgr.Login(ctx, jwtxtest.Valid(t, 2, "second"))
		require.ErrorIs(t, err, securestore.ErrStorage)

		require.Equal(t, first, f.mgr.Token())
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears memory and store", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.mgr.Login(ctx, jwtxtest.Valid(t, 1, "a"))
		require.NoError(t, err)

		f.mgr.Logout(ctx)
		require.Equal(t, session.StateUnauthenticated, f.mgr.State())
		_, ok, _ := f.store.Get(ctx)
		require.False(t, ok)
	})

	t.Run("is idempotent", func(t *testing.T) {
		f := newFixture(t)
		f.mgr.Restore(ctx)
		f.mgr.Logout(ctx)
		f.mgr.Logout(ctx)
		require.Equal(t, session.StateUnauthenticated, f.mgr.State())
	})

	t.Run("delete failure still signs out", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.mgr.Login(ctx, jwtxtest.Valid(t, 1, "a"))
		require.NoError(t, err)

		f.store.FailOn(securestore.OpDelete, errors.New("keychain locked"))
		f.mgr.Logout(ctx)
		require.False(t, f.mgr.IsAuthenticated())
	})
}

func TestAuthenticationExpiredEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	token := jwtxtest.Valid(t, 1, "a")
	_, err := f.mgr.Login(ctx, token)
	require.NoError(t, err)

	f.bus.Publish(eventx.EventAuthenticationExpired)
	require.Equal(t, session.StateUnauthenticated, f.mgr.State())

	// The event only drops memory; the store belongs to whoever published.
	stored, ok, _ := f.store.Get(ctx)
	require.True(t, ok)
	require.Equal(t, token, stored)
	require.Zero(t, f.count.Deletes())

	require.False(t, f.mgr.OnSessionExpired())
}

// gatedStore holds the first Get until release is closed.
type gatedStore struct {
	securestore.Store
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedStore) Get(ctx context.Context) (string, bool, error) {
	token, ok, err := g.Store.Get(ctx)
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return token, ok, err
}

func TestLoginDuringRestoreSurvives(t *testing.T) {
	ctx := context.Background()
	mem := securestore.NewMemory()
	require.NoError(t, mem.Set(ctx, jwtxtest.Expired(t, 1, "old")))

	gate := &gatedStore{Store: mem, entered: make(chan struct{}), release: make(chan struct{})}
	mgr := session.New(gate, nil)
	t.Cleanup(mgr.Close)

	restored := make(chan session.State, 1)
	go func() { restored <- mgr.Restore(ctx) }()
	<-gate.entered

	fresh := jwtxtest.Valid(t, 2, "new")
	loggedIn := make(chan error, 1)
	go func() {
		_, err := mgr.Login(ctx, fresh)
		loggedIn <- err
	}()

	time.Sleep(20 * time.Millisecond)
	close(gate.release)
	<-restored
	require.NoError(t, <-loggedIn)

	require.Equal(t, session.StateAuthenticated, mgr.State())
	require.Equal(t, fresh, mgr.Token())
	stored, ok, err := mem.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, fresh, stored)
}

func TestRestoreAfterLoginKeepsSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	token := jwtxtest.Valid(t, 3, "a")
	_, err := f.mgr.Login(ctx, token)
	require.NoError(t, err)

	require.Equal(t, session.StateAuthenticated, f.mgr.Restore(ctx))
	require.Equal(t, token, f.mgr.Token())
	require.Zero(t, f.count.Deletes())
}

func TestExpire(t *testing.T) {
	ctx := context.Background()

	t.Run("live token", func(t *testing.T) {
		f := newFixture(t)
		token := jwtxtest.Valid(t, 1, "a")
		_, err := f.mgr.Login(ctx, token)
		require.NoError(t, err)

		require.True(t, f.mgr.Expire(ctx, token))
		require.Equal(t, session.StateUnauthenticated, f.mgr.State())
		_, ok, _ := f.store.Get(ctx)
		require.False(t, ok)
		require.Equal(t, int64(1), f.count.Deletes())
	})

	t.Run("replaced token", func(t *testing.T) {
		f := newFixture(t)
		old := jwtxtest.Valid(t, 1, "a")
		fresh := jwtxtest.Valid(t, 2, "b")
		_, err := f.mgr.Login(ctx, old)
		require.NoError(t, err)
		_, err = f.mgr.Login(ctx, fresh)
		require.NoError(t, err)

		require.False(t, f.mgr.Expire(ctx, old))
		require.Equal(t, fresh, f.mgr.Token())
		stored, ok, _ := f.store.Get(ctx)
		require.True(t, ok)
		require.Equal(t, fresh, stored)
		require.Zero(t, f.count.Deletes())
	})

	t.Run("stored but not held", func(t *testing.T) {
		f := newFixture(t)
		token := jwtxtest.Valid(t, 1, "a")
		require.NoError(t, f.store.Set(ctx, token))

		require.True(t, f.mgr.Expire(ctx, token))
		_, ok, _ := f.store.Get(ctx)
		require.False(t, ok)
	})

	t.Run("login between expire and event survives", func(t *testing.T) {
		f := newFixture(t)
		old := jwtxtest.Valid(t, 1, "a")
		_, err := f.mgr.Login(ctx, old)
		require.NoError(t, err)
		require.True(t, f.mgr.Expire(ctx, old))

		fresh := jwtxtest.Valid(t, 2, "b")
		_, err = f.mgr.Login(ctx, fresh)
		require.NoError(t, err)

		f.bus.Publish(eventx.EventAuthenticationExpired)
		require.Equal(t, session.StateAuthenticated, f.mgr.State())
		require.Equal(t, fresh, f.mgr.Token())

		// Only the one event is absorbed.
		f.bus.Publish(eventx.EventAuthenticationExpired)
		require.Equal(t, session.StateUnauthenticated, f.mgr.State())
	})

	t.Run("empty token", func(t *testing.T) {
		f := newFixture(t)
		require.False(t, f.mgr.Expire(ctx, ""))
	})
}

func TestCloseUnsubscribes(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, 1, f.bus.Subscribers(eventx.EventAuthenticationExpired))
	f.mgr.Close()
	f.mgr.Close()
	require.Zero(t, f.bus.Subscribers(eventx.EventAuthenticationExpired))
}

func TestProactiveExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	f := newFixture(t, session.WithClock(clock))

	_, err := f.mgr.Login(ctx, jwtxtest.Token(t, 1, "a", now.Add(time.Minute)))
	require.NoError(t, err)
	require.True(t, f.mgr.IsAuthenticated())

	mu.Lock()
	now = now.Add(56 * time.Second)
	mu.Unlock()

	require.Equal(t, "", f.mgr.Token())
	require.Equal(t, session.StateUnauthenticated, f.mgr.State())
	_, ok, _ := f.store.Get(ctx)
	require.False(t, ok)
}

func TestWatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var mu sync.Mutex
	var seen []session.State
	stop := f.mgr.Watch(func(s session.State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	f.mgr.Restore(ctx)
	_, err := f.mgr.Login(ctx, jwtxtest.Valid(t, 1, "a"))
	require.NoError(t, err)
	f.mgr.Logout(ctx)
	f.mgr.Logout(ctx)

	stop()
	stop()
	_, err = f.mgr.Login(ctx, jwtxtest.Valid(t, 1, "a"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []session.State{
		session.StateUnauthenticated,
		session.StateAuthenticated,
		session.StateUnauthenticated,
	}, seen)
}

func TestWait(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.mgr.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	f.mgr.Restore(context.Background())
	st, err := f.mgr.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, session.StateUnauthenticated, st)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "unknown", session.StateUnknown.String())
	require.Equal(t, "authenticated", session.StateAuthenticated.String())
	require.Equal(t, "unauthenticated", session.StateUnauthenticated.String())
}
