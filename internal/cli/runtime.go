package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
	"github.com/aussiebroadwan/climblog/pkg/cryptox"
	"github.com/aussiebroadwan/climblog/pkg/eventx"
	"github.com/aussiebroadwan/climblog/pkg/securestore"
	"github.com/aussiebroadwan/climblog/pkg/securestore/boltstore"
	"github.com/aussiebroadwan/climblog/pkg/securestore/sqlitestore"
	"github.com/aussiebroadwan/climblog/pkg/session"
	"github.com/aussiebroadwan/climblog/pkg/slogx"
)

// ExpiredNotice is printed once when the API rejects the stored session.
const ExpiredNotice = "Session expired, please log in again."

// runtime is everything a command needs, built once per invocation.
type runtime struct {
	cfg    Config
	logger *slog.Logger

	store    securestore.Store
	bus      *eventx.Bus
	sessions *session.Manager
	client   *climbsdk.Client

	stopNotice func()
}

func newRuntime(ctx context.Context, cfg Config, stderr io.Writer) (*runtime, error) {
	rt := &runtime{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "climblog",
			Version: Version,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  stderr,
		}),
	}

	store, err := openStore(cfg, rt.logger)
	if err != nil {
		return nil, err
	}
	rt.store = store

	rt.bus = eventx.NewBus(rt.logger)
	rt.sessions = session.New(rt.store, rt.bus,
		session.WithGrace(cfg.Grace),
		session.WithLogger(rt.logger),
	)

	var once sync.Once
	rt.stopNotice = rt.bus.Subscribe(eventx.EventAuthenticationExpired, func(eventx.Event) {
		once.Do(func() { fmt.Fprintln(stderr, ExpiredNotice) })
	})

	rt.client = climbsdk.NewClient(cfg.APIURL, rt.sessions,
		climbsdk.WithTimeout(cfg.Timeout),
		climbsdk.WithStore(rt.store),
		climbsdk.WithNotifier(rt.bus),
		climbsdk.WithLogger(rt.logger),
		climbsdk.WithUserAgent("climblog-cli/"+Version),
	)

	rt.sessions.Restore(ctx)
	if _, err := rt.sessions.Wait(ctx); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *runtime) Close() {
	rt.stopNotice()
	rt.sessions.Close()
	if err := rt.store.Close(); err != nil {
		rt.logger.Warn("closing token store", "err", err)
	}
}

func openStore(cfg Config, logger *slog.Logger) (securestore.Store, error) {
	if cfg.Store == StoreMemory {
		return securestore.NewMemory(), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	masterKeyPath, err := ensureMasterKey(cfg)
	if err != nil {
		return nil, err
	}
	if masterKeyPath != "" {
		cryptox.SetMasterKeyPath(masterKeyPath)
	}

	sealer, err := cryptox.NewSealer("securestore")
	if err != nil {
		return nil, err
	}

	logger.Debug("opening token store", "kind", cfg.Store, "path", cfg.StorePath)
	switch cfg.Store {
	case StoreBolt:
		return boltstore.Open(cfg.StorePath, sealer)
	case StoreSQLite:
		return sqlitestore.Open(cfg.StorePath, sealer)
	default:
		return nil, fmt.Errorf("unknown store %q (want %s, %s or %s)", cfg.Store, StoreBolt, StoreSQLite, StoreMemory)
	}
}

// ensureMasterKey returns the master key file to use. With neither a path
// nor CLIMBLOG_MASTER_KEY set, a key file is created next to the store so
// the sealed token stays readable across runs.
func ensureMasterKey(cfg Config) (string, error) {
	if cfg.MasterKeyPath != "" {
		return cfg.MasterKeyPath, nil
	}
	if os.Getenv(cryptox.MasterKeyEnv) != "" {
		return "", nil
	}

	path := filepath.Join(filepath.Dir(cfg.StorePath), "master.key")
	_, err := os.Stat(path)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat master key: %w", err)
	}

	key, err := cryptox.GenerateToken(cryptox.MasterKeySize)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(key), 0o600); err != nil {
		return "", fmt.Errorf("write master key: %w", err)
	}
	return path, nil
}
