package testutil

import (
	"chatstat/internal/models"
	"chatstat/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockCompressor is an identity compressor.
type MockCompressor struct {
	Closed bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error)   { return val, nil }
func (m *MockCompressor) Decompress(val []byte) ([]byte, error) { return val, nil }
func (m *MockCompressor) IsCompressed(_ []byte) bool            { return false }
func (m *MockCompressor) Close()                                { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface and records values.
type MockMetrics struct {
	mu       sync.Mutex
	Counted  int
	Skipped  map[string]int
	Rows     int
	Ingests  int
	Requests map[string]int
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Requests == nil {
		m.Requests = make(map[string]int)
	}
	m.Requests[endpoint]++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObserveIngestDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ingests++
}
func (m *MockMetrics) AddMessages(counted int, skipped map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counted += counted
	if m.Skipped == nil {
		m.Skipped = make(map[string]int)
	}
	for k, v := range skipped {
		m.Skipped[k] += v
	}
}
func (m *MockMetrics) SetRowsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rows = count
}

// MockCache is a map-backed cache.
type MockCache struct {
	mu      sync.Mutex
	Data    map[string][]byte
	Cleared int
}

func NewMockCache() *MockCache { return &MockCache{Data: make(map[string][]byte)} }

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}
func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}
func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
	m.Cleared++
}

// MockNamesStore keeps name tables in memory, keyed by path.
type MockNamesStore struct {
	Files map[string]models.NameTable
	Saves int
}

func (m *MockNamesStore) Load(path string) (models.NameTable, error) {
	out := make(models.NameTable)
	for id, name := range m.Files[path] {
		out[id] = name
	}
	return out, nil
}

func (m *MockNamesStore) Save(path string, names models.NameTable) error {
	if m.Files == nil {
		m.Files = make(map[string]models.NameTable)
	}
	cp := make(models.NameTable, len(names))
	for id, name := range names {
		cp[id] = name
	}
	m.Files[path] = cp
	m.Saves++
	return nil
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
