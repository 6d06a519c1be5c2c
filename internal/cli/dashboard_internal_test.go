package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/homeenergy/internal/tui"
)

// TestRunDashboard_FailOnErrorClosesLogFile covers the RunE error path, where
// cobra skips PersistentPostRunE.
func TestRunDashboard_FailOnErrorClosesLogFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	logPath := filepath.Join(t.TempDir(), "homeenergy.log")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOMEENERGY_BACKEND__BASE_URL", server.URL)
	t.Setenv("HOMEENERGY_LOGGING__FILE", logPath)

	var out bytes.Buffer
	cmd := &cobra.Command{Use: "dashboard"}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	opts := &rootOptions{lookupEnv: os.LookupEnv, plain: true, failOnError: true}
	err := runDashboard(cmd, opts)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.NotNil(t, opts.logResult)
	assert.True(t, opts.logResult.UsingFile)
	assert.False(t, opts.logResult.IsOpen(), "log file must be closed when RunE fails")
	assert.FileExists(t, logPath)
}

func TestDashboardMode_MixedCaseFormat(t *testing.T) {
	for _, format := range []string{"Plain", "PLAIN", "Json", "JSON"} {
		t.Run(format, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			t.Setenv("HOMEENERGY_OUTPUT__FORMAT", format)

			opts := &rootOptions{lookupEnv: os.LookupEnv}
			cfg, err := opts.resolveConfig(&cobra.Command{})
			require.NoError(t, err)

			assert.Equal(t, strings.ToLower(format), cfg.Output.Format)
			assert.Equal(t, tui.OutputModePlain, dashboardMode(cfg, opts),
				"an explicit format never reaches the interactive program")
		})
	}
}
