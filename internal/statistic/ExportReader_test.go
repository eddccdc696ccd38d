package statistic

import (
	"chatstat/internal/models"
	"chatstat/internal/testutil"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `{
  "name": "Team",
  "type": "private_group",
  "id": 1,
  "messages": [
    {"id": 1, "type": "message", "date": "2024-03-01T09:00:00", "from": "Alice", "from_id": "user42", "text": "hi"},
    {"id": 2, "type": "service", "date": "2024-03-01T09:01:00", "actor": "Alice", "actor_id": "user42"}
  ]
}`

func TestExportReader_Read(t *testing.T) {
	reader := NewExportReader(&testutil.MockCompressor{}, &testutil.MockLogger{})
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0644))

	export, err := reader.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Team", export.Name)
	require.Len(t, export.Messages, 2)

	msg, err := export.Message(1)
	require.NoError(t, err)
	assert.Equal(t, "service", msg.Type)
}

func TestExportReader_ReadWithBOM(t *testing.T) {
	reader := NewExportReader(&testutil.MockCompressor{}, &testutil.MockLogger{})
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, append([]byte("\xEF\xBB\xBF"), sampleExport...), 0644))

	export, err := reader.Read(path)
	require.NoError(t, err)
	assert.Len(t, export.Messages, 2)
}

func TestExportReader_ReadCompressed(t *testing.T) {
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	defer compressor.Close()

	data, err := compressor.Compress([]byte(sampleExport))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "result.json.zst")
	require.NoError(t, os.WriteFile(path, data, 0644))

	export, err := NewExportReader(compressor, &testutil.MockLogger{}).Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Team", export.Name)
}

func TestExportReader_Missing(t *testing.T) {
	reader := NewExportReader(&testutil.MockCompressor{}, &testutil.MockLogger{})

	_, err := reader.Read(filepath.Join(t.TempDir(), "none.json"))
	assert.True(t, errors.Is(err, models.ErrExportNotFound))
}

func TestExportReader_InvalidJSON(t *testing.T) {
	reader := NewExportReader(&testutil.MockCompressor{}, &testutil.MockLogger{})
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := reader.Read(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, models.ErrExportNotFound))
}
