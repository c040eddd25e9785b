package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estudiarq/archisheets/internal/sheets"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.MasterSheetID)
	assert.Equal(t, sheets.DefaultEndpoint, cfg.SheetsEndpoint)
	assert.Contains(t, cfg.TokenPath, ".archisheets")
	assert.Contains(t, cfg.DBPath, "archisheets.db")
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"master_sheet_id: master-123\n"+
			"sheets_endpoint: http://localhost:9999\n"+
			"db_path: /tmp/archi.db\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "master-123", cfg.MasterSheetID)
	assert.Equal(t, "http://localhost:9999", cfg.SheetsEndpoint)
	assert.Equal(t, "/tmp/archi.db", cfg.DBPath)
	// Unset fields keep defaults.
	assert.Contains(t, cfg.TokenPath, ".archisheets")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("master_sheet_id: from-file\n"), 0644))

	t.Setenv("ARCHISHEETS_MASTER_SHEET", "from-env")
	t.Setenv("ARCHISHEETS_TOKEN_PATH", "/tmp/token")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.MasterSheetID)
	assert.Equal(t, "/tmp/token", cfg.TokenPath)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("master_sheet_id: [broken\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestValidate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.NoError(t, Config{MasterSheetID: "m"}.Validate())
}
