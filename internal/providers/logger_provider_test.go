package providers

import (
	"chatstat/internal/structures"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggerConfig(dir, level string) *structures.Config {
	return &structures.Config{
		Logger: structures.LoggerConfig{
			Level: level,
			Mode:  0644,
			Dir:   dir,
		},
	}
}

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "app", TypeApp.String())
	assert.Equal(t, "ingest", TypeIngest.String())
	assert.Equal(t, "query", TypeQuery.String())
}

func TestNewLogProvider_WritesPerTypeFiles(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogProvider(loggerConfig(dir, "info"))
	require.NoError(t, err)

	logger.Infof(TypeApp, "app message")
	logger.Warnf(TypeIngest, "skipped %d records", 3)
	logger.Errorf(TypeQuery, "query failed")
	logger.Debugf(TypeQuery, "hidden at info level")
	logger.Close()

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(app), `"message":"app message"`)
	assert.Contains(t, string(app), `"type":"app"`)

	ingest, err := os.ReadFile(filepath.Join(dir, "ingest.log"))
	require.NoError(t, err)
	assert.Contains(t, string(ingest), "skipped 3 records")
	assert.Contains(t, string(ingest), `"level":"warn"`)

	query, err := os.ReadFile(filepath.Join(dir, "query.log"))
	require.NoError(t, err)
	assert.Contains(t, string(query), "query failed")
	assert.NotContains(t, string(query), "hidden at info level")
}

func TestNewLogProvider_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	logger, err := NewLogProvider(loggerConfig(dir, "info"))
	require.NoError(t, err)
	logger.Close()

	assert.FileExists(t, filepath.Join(dir, "app.log"))
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := NewLogProvider(loggerConfig(filepath.Join(file, "logs"), "info"))
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	_, err := NewLogProvider(loggerConfig(t.TempDir(), "verbose"))
	assert.ErrorContains(t, err, "invalid log level")
}
