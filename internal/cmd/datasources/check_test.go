package datasources

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"text/template"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turbolytics/curator/internal/catalog"
)

func TestIntegrationPostgresCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	t.Run("healthy datasource", func(t *testing.T) {
		ctx := context.Background()

		// Start a PostgreSQL container
		pgContainer, err := postgres.Run(ctx,
			"postgres:16",
			postgres.WithInitScripts(filepath.Join("testdata", "init-db.sql")),
			postgres.WithDatabase("test"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).WithStartupTimeout(5*time.Second)),
		)
		require.NoError(t, err)

		t.Cleanup(func() {
			if err := pgContainer.Terminate(ctx); err != nil {
				t.Fatalf("failed to terminate pgContainer: %s", err)
			}
		})

		connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)

		reportDir, err := os.MkdirTemp("", "check-report")
		require.NoError(t, err)
		defer os.RemoveAll(reportDir)

		configTemplate := `
report:
  type: local
  local:
    path: "{{.ReportDir}}"

fluent_datasources:
  my_pg_ds:
    type: postgres
    connection_string: "{{.ConnStr}}"
    assets:
      users:
        type: table
        schema_name: public
        table_name: users
        order_by:
          - "-id"
`

		tmpl, err := template.New("config").Parse(configTemplate)
		require.NoError(t, err)

		configPath := filepath.Join(t.TempDir(), "config.yml")
		configFile, err := os.Create(configPath)
		require.NoError(t, err)
		defer configFile.Close()

		err = tmpl.Execute(configFile, struct {
			ConnStr   string
			ReportDir string
		}{
			ConnStr:   connStr,
			ReportDir: reportDir,
		})
		require.NoError(t, err)

		// Call the Cobra check command entry point
		cmd := newCheckCommand()
		cmd.SetArgs([]string{"--config", configPath})
		err = cmd.ExecuteContext(ctx)
		require.NoError(t, err)

		// The report is written under a run-id prefix
		files, err := os.ReadDir(reportDir)
		require.NoError(t, err)
		require.Len(t, files, 1)

		runID := files[0].Name()
		reportPath := filepath.Join(reportDir, runID, "report.json")
		data, err := os.ReadFile(reportPath)
		require.NoError(t, err)

		var report catalog.Report
		require.NoError(t, json.Unmarshal(data, &report))

		assert.Equal(t, runID, report.RunID)
		assert.True(t, report.Success)
		assert.Equal(t, 1, report.NumDatasources)
		require.Len(t, report.Results, 1)
		assert.Equal(t, "my_pg_ds", report.Results[0].Datasource)
		assert.True(t, report.Results[0].Success)
	})

	t.Run("missing table fails the run", func(t *testing.T) {
		ctx := context.Background()

		pgContainer, err := postgres.Run(ctx,
			"postgres:16",
			postgres.WithDatabase("test"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).WithStartupTimeout(5*time.Second)),
		)
		require.NoError(t, err)

		t.Cleanup(func() {
			if err := pgContainer.Terminate(ctx); err != nil {
				t.Fatalf("failed to terminate pgContainer: %s", err)
			}
		})

		connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)

		configTemplate := `
fluent_datasources:
  my_pg_ds:
    type: postgres
    connection_string: "{{.ConnStr}}"
    assets:
      users:
        type: table
        table_name: users
`

		tmpl, err := template.New("config").Parse(configTemplate)
		require.NoError(t, err)

		configPath := filepath.Join(t.TempDir(), "config.yml")
		configFile, err := os.Create(configPath)
		require.NoError(t, err)
		defer configFile.Close()

		err = tmpl.Execute(configFile, struct{ ConnStr string }{ConnStr: connStr})
		require.NoError(t, err)

		cmd := newCheckCommand()
		cmd.SetArgs([]string{"--config", configPath})
		err = cmd.ExecuteContext(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 1 datasource checks failed")
	})
}
