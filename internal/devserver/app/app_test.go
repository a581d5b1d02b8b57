package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
	"github.com/aussiebroadwan/climblog/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "6000")
	t.Setenv("DEVSERVER_TOKEN_TTL", "2")
	t.Setenv("DEVSERVER_SEED", "false")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "bogus")

	cfg := LoadConfig()
	require.Equal(t, 6000, cfg.Port)
	require.Equal(t, 2*time.Minute, cfg.TokenTTL)
	require.False(t, cfg.Seed)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, "climblog-dev", cfg.Issuer)
	require.Equal(t, "climblog.db", cfg.DatabaseFile)
}

func testConfig(dir string) Config {
	return Config{
		Issuer:              "climblog-test",
		TokenTTL:            time.Minute,
		KeyFile:             filepath.Join(dir, "signing.key"),
		DatabaseFile:        filepath.Join(dir, "climblog.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		Seed:                true,
		Env:                 "test",
		LogLevel:            "error",
		Port:                0,
		ShutdownGracePeriod: time.Second,
	}
}

func TestTokensSurviveRestart(t *testing.T) {
	t.Setenv(cryptox.MasterKeyEnv, "test-master-key")
	cryptox.ResetMasterKeyForTesting()
	t.Cleanup(cryptox.ResetMasterKeyForTesting)

	cfg := testConfig(t.TempDir())

	first, err := New(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(first.Handler())

	body, _ := json.Marshal(climbsdk.RegisterRequest{
		Username: "sam", Email: "sam@example.com", Password: "Secure123!", FirstName: "Sam", SkillLevelID: 1,
	})
	resp, err := http.Post(srv.URL+"/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reg climbsdk.RegisterResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reg))
	_ = resp.Body.Close()
	srv.Close()
	require.NoError(t, first.Shutdown())

	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Shutdown() })
	srv = httptest.NewServer(second.Handler())
	t.Cleanup(srv.Close)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/attempts", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Verified and the user still exists, there is simply nothing logged yet.
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEphemeralKeyWithoutMasterKey(t *testing.T) {
	t.Setenv(cryptox.MasterKeyEnv, "")
	cryptox.ResetMasterKeyForTesting()
	t.Cleanup(cryptox.ResetMasterKeyForTesting)

	cfg := testConfig(t.TempDir())
	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown() })

	require.NoFileExists(t, cfg.KeyFile)
	require.True(t, app.keys.KeySet.IsReady())

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
