//go:build e2e

package rally_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/rally/pkg/rallysdk"
)

/*
 * Container setup and helpers for rally end-to-end tests. Mail and SMS use
 * the log providers, so links are recovered from the container logs.
 */

const (
	testImageName = "rally-test:latest"
	cookieName    = "rally_session"
	cronSecret    = "e2e-cron-secret"
)

// TestMain builds the image once for the whole suite.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building rally Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up rally Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/rally/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

type rallyContainer struct {
	testcontainers.Container
	BaseURL string
}

// setupRallyContainer starts the service and returns it with its base URL.
func setupRallyContainer(t *testing.T) *rallyContainer {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"RALLY_DATABASE_FILE": "/data/rally.db",
			"SESSION_SECRET":      "e2e-session-secret-0123456789",
			"CRON_SECRET":         cronSecret,
			"SMS_PROVIDER":        "log",
			"ENV":                 "test",
			"LOG_LEVEL":           "info",
			"LOG_FORMAT":          "json",
			// Tests fire requests much faster than real users.
			"RATELIMIT_STRICT_PER_MIN":   "1000",
			"RATELIMIT_MODERATE_PER_MIN": "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &rallyContainer{
		Container: container,
		BaseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
	}
}

var (
	magicLinkPattern  = regexp.MustCompile(`/auth/magic/([A-Za-z0-9_-]{20,})`)
	manageLinkPattern = regexp.MustCompile(`/volunteer/manage/([A-Za-z0-9_-]{20,})`)
)

// lastLinkToken returns the token of the most recent link matching re in
// the container logs, waiting briefly for the log line to appear.
func (c *rallyContainer) lastLinkToken(t *testing.T, re *regexp.Regexp) string {
	t.Helper()

	var token string
	require.Eventually(t, func() bool {
		rc, err := c.Logs(context.Background())
		if err != nil {
			return false
		}
		defer rc.Close()

		logs, err := io.ReadAll(rc)
		if err != nil {
			return false
		}
		matches := re.FindAllSubmatch(logs, -1)
		if len(matches) == 0 {
			return false
		}
		token = string(matches[len(matches)-1][1])
		return true
	}, 10*time.Second, 200*time.Millisecond)

	return token
}

// signIn performs a full magic-link sign in for email.
func (c *rallyContainer) signIn(t *testing.T, email string) *rallysdk.Session {
	t.Helper()
	client := rallysdk.NewSDKClient(c.BaseURL)

	require.NoError(t, client.RequestMagicLink(t.Context(), rallysdk.MagicLinkRequest{Email: email}))
	token := c.lastLinkToken(t, magicLinkPattern)

	session, err := client.RedeemMagicLink(t.Context(), token, cookieName)
	require.NoError(t, err)
	return client.NewSession(session)
}

// assertHealthy checks a health response.
func assertHealthy(t *testing.T, health *rallysdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Version)
}
