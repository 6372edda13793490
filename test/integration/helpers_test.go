//go:build integration

package integration

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// addrPattern extracts the bound port from the server's startup log line.
var addrPattern = regexp.MustCompile(`"addr":"[^"]*:(\d+)"`)

// buildBinary compiles ./cmd/carbonwise into a temp dir.
func buildBinary(t *testing.T) string {
	t.Helper()
	binaryPath := filepath.Join(t.TempDir(), "carbonwise")
	rootDir, err := filepath.Abs("../..")
	require.NoError(t, err)

	cmdBuild := exec.Command("go", "build", "-o", binaryPath, "./cmd/carbonwise")
	cmdBuild.Dir = rootDir
	output, err := cmdBuild.CombinedOutput()
	require.NoError(t, err, "Build failed: %s", string(output))
	return binaryPath
}

// waitForPort scans JSON log lines for the given startup message and
// returns the port it reports, or "" on timeout.
func waitForPort(r io.Reader, message string) string {
	scanner := bufio.NewScanner(r)
	found := make(chan string, 1)

	go func() {
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.Contains(line, message) {
				continue
			}
			if m := addrPattern.FindStringSubmatch(line); len(m) > 1 {
				found <- m[1]
				break
			}
		}
		// Keep draining so the child never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, r)
	}()

	select {
	case port := <-found:
		return port
	case <-time.After(10 * time.Second):
		return ""
	}
}

// startServer runs "carbonwise serve" on an ephemeral port with extra
// environment and returns the HTTP base URL.
func startServer(t *testing.T, binaryPath string, env []string, args ...string) string {
	t.Helper()

	cmd := exec.Command(binaryPath, append([]string{"serve", "--port", "0"}, args...)...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Env = append(cmd.Env, "CARBONWISE_LOG_FORMAT=json", "CARBONWISE_LOG_LEVEL=info")

	stderr, err := cmd.StderrPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	})

	port := waitForPort(stderr, "CarbonWise server running")
	require.NotEmpty(t, port, "failed to get port")
	return "http://127.0.0.1:" + port
}
