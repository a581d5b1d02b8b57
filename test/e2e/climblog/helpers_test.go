package climblog_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
	"github.com/aussiebroadwan/climblog/pkg/eventx"
	"github.com/aussiebroadwan/climblog/pkg/securestore"
	"github.com/aussiebroadwan/climblog/pkg/session"
	"github.com/aussiebroadwan/climblog/pkg/slogx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * End-to-end tests run the devserver image in a container and drive it
 * through climbsdk and a session.Manager, the same way the CLI does.
 */

const (
	testImageName = "climblog-devserver-test:latest"

	testPassword = "Secure123!"
)

// relaxedLimits keeps rapid test traffic under the rate limiter.
var relaxedLimits = map[string]string{
	"DEVSERVER_RATELIMIT_LOGIN_REQUESTS":    "1000",
	"DEVSERVER_RATELIMIT_LOGIN_BURST":       "1000",
	"DEVSERVER_RATELIMIT_REGISTER_REQUESTS": "1000",
	"DEVSERVER_RATELIMIT_REGISTER_BURST":    "1000",
	"DEVSERVER_RATELIMIT_PUBLIC_REQUESTS":   "1000",
	"DEVSERVER_RATELIMIT_PUBLIC_BURST":      "1000",
}

// TestMain builds the devserver image once for the whole package. Without
// docker the package is skipped.
func TestMain(m *testing.M) {
	if _, err := exec.LookPath("docker"); err != nil {
		fmt.Fprintln(os.Stdout, "docker not found, skipping end-to-end tests")
		os.Exit(0)
	}
	if err := exec.Command("docker", "info").Run(); err != nil {
		fmt.Fprintln(os.Stdout, "docker daemon unavailable, skipping end-to-end tests")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building devserver Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up devserver Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.Command("docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/climblog-devserver/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.Command("docker", "rmi", "-f", testImageName).Run()
}

// setupDevserver starts a devserver container and returns its base URL.
// extraEnv overrides the defaults.
func setupDevserver(t *testing.T, extraEnv map[string]string) string {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"ENV":                 "test",
		"LOG_LEVEL":           "info",
		"LOG_FORMAT":          "json",
		"CLIMBLOG_MASTER_KEY": "e2e-master-key",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"5000/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("5000/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "5000")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// clientEnv is one client process: a token store, its session and an API
// client sharing an event bus.
type clientEnv struct {
	store    *securestore.Counting
	bus      *eventx.Bus
	sessions *session.Manager
	client   *climbsdk.Client
}

func newClientEnv(t *testing.T, baseURL string) *clientEnv {
	t.Helper()
	logger := slogx.Discard()

	store := securestore.NewCounting(securestore.NewMemory())
	bus := eventx.NewBus(logger)
	sessions := session.New(store, bus, session.WithLogger(logger))
	t.Cleanup(sessions.Close)

	client := climbsdk.NewClient(baseURL, sessions,
		climbsdk.WithStore(store),
		climbsdk.WithNotifier(bus),
		climbsdk.WithLogger(logger),
		climbsdk.WithTimeout(10*time.Second),
	)

	sessions.Restore(t.Context())
	_, err := sessions.Wait(t.Context())
	require.NoError(t, err)

	return &clientEnv{store: store, bus: bus, sessions: sessions, client: client}
}

// register creates an account and installs its token as the session.
func (e *clientEnv) register(t *testing.T, username string) session.Session {
	t.Helper()
	resp, err := e.client.Register(t.Context(), climbsdk.RegisterRequest{
		Username:     username,
		Email:        username + "@example.com",
		Password:     testPassword,
		FirstName:    username,
		SkillLevelID: 1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	sess, err := e.sessions.Login(t.Context(), resp.Token)
	require.NoError(t, err)
	return sess
}
