package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/turbolytics/curator/internal"
	"github.com/turbolytics/curator/internal/config"
)

var serverFixture = []byte(`
fluent_datasources:
  my_pg_ds:
    type: postgres
    connection_string: postgresql://localhost/test
    assets:
      sales:
        type: table
        table_name: sales

  my_fs_ds:
    type: pandas_filesystem
    base_directory: ./data
`)

func TestServerListDatasources(t *testing.T) {
	curator, err := config.NewCurator(serverFixture)
	require.NoError(t, err)

	s := NewServer(zap.NewNop(), &curator.Datasources)
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/datasources")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Datasources []DatasourceInfo `json:"datasources"`
		Count       int              `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "my_pg_ds", body.Datasources[0].Name)
	assert.Equal(t, []string{"sales"}, body.Datasources[0].Assets)
}

func TestServerGetDatasource(t *testing.T) {
	curator, err := config.NewCurator(serverFixture)
	require.NoError(t, err)

	s := NewServer(zap.NewNop(), &curator.Datasources)
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	t.Run("known datasource", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/datasources/my_fs_ds")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var info DatasourceInfo
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
		assert.Equal(t, "pandas_filesystem", info.Type)
		assert.Equal(t, "filesystem", info.Kind)
		assert.Empty(t, info.Assets)
	})

	t.Run("unknown datasource", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/datasources/nope")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string { return s.name }

func (s stubChecker) Check(ctx context.Context) error { return s.err }

func TestRun(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		report := Run(context.Background(), "run-1", []internal.Checker{
			stubChecker{name: "a"},
			stubChecker{name: "b"},
		})

		assert.True(t, report.Success)
		assert.Equal(t, 2, report.NumDatasources)
		assert.Equal(t, 0, report.NumFailures)
	})

	t.Run("failure is recorded", func(t *testing.T) {
		report := Run(context.Background(), "run-2", []internal.Checker{
			stubChecker{name: "a"},
			stubChecker{name: "b", err: assert.AnError},
		})

		assert.False(t, report.Success)
		assert.Equal(t, 1, report.NumFailures)
		assert.Equal(t, "b", report.Results[1].Datasource)
		assert.False(t, report.Results[1].Success)
		assert.NotEmpty(t, report.Results[1].Error)
	})

	t.Run("unsupported checker is skipped", func(t *testing.T) {
		report := Run(context.Background(), "run-3", []internal.Checker{
			internal.UnsupportedChecker{Datasource: "abs_ds", Type: "pandas_abs"},
		})

		assert.True(t, report.Success)
		assert.Equal(t, 0, report.NumFailures)
		assert.True(t, report.Results[0].Skipped)
	})
}
