package services

import (
	"chatstat/internal/models"
	"chatstat/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		msg    models.RawMessage
		want   NormalizedMessage
		reason SkipReason
		ok     bool
	}{
		{
			name: "user message",
			msg:  models.RawMessage{Type: "message", Date: "2024-03-01T10:15:00", From: "Alice", FromID: "user42"},
			want: NormalizedMessage{ID: 42, Date: testutil.Date(2024, 3, 1), Name: "Alice"},
			ok:   true,
		},
		{
			name: "bare numeric sender",
			msg:  models.RawMessage{Type: "message", Date: "2024-03-01", From: "Bob", FromID: "7"},
			want: NormalizedMessage{ID: 7, Date: testutil.Date(2024, 3, 1), Name: "Bob"},
			ok:   true,
		},
		{
			name: "missing name",
			msg:  models.RawMessage{Type: "message", Date: "2024-03-01T00:00:00", FromID: "user9"},
			want: NormalizedMessage{ID: 9, Date: testutil.Date(2024, 3, 1)},
			ok:   true,
		},
		{
			name:   "service message",
			msg:    models.RawMessage{Type: "service", Date: "2024-03-01T10:15:00", FromID: "user42"},
			reason: SkipService,
		},
		{
			name:   "channel sender",
			msg:    models.RawMessage{Type: "message", Date: "2024-03-01T10:15:00", FromID: "channel99"},
			reason: SkipChannel,
		},
		{
			name:   "no sender",
			msg:    models.RawMessage{Type: "message", Date: "2024-03-01T10:15:00"},
			reason: SkipNoSender,
		},
		{
			name:   "unknown prefix",
			msg:    models.RawMessage{Type: "message", Date: "2024-03-01T10:15:00", FromID: "bot12"},
			reason: SkipBadSender,
		},
		{
			name:   "user without digits",
			msg:    models.RawMessage{Type: "message", Date: "2024-03-01T10:15:00", FromID: "user"},
			reason: SkipBadSender,
		},
		{
			name:   "bad date",
			msg:    models.RawMessage{Type: "message", Date: "yesterday", FromID: "user42"},
			reason: SkipBadDate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason, ok := Normalize(tt.msg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Anna Maria", CleanName("  Anna\n Maria\t"))
	// Decomposed e + combining acute becomes the precomposed form.
	assert.Equal(t, "Ren\u00e9", CleanName("Rene\u0301"))
	assert.Equal(t, "", CleanName("   "))
}
