package services

import (
	"chatstat/internal/models"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const (
	messageType   = "message"
	userPrefix    = "user"
	channelPrefix = "channel"
)

type SkipReason string

const (
	SkipService   SkipReason = "service"
	SkipNoSender  SkipReason = "no_sender"
	SkipChannel   SkipReason = "channel"
	SkipBadSender SkipReason = "bad_sender"
	SkipBadDate   SkipReason = "bad_date"
	SkipMalformed SkipReason = "malformed"
)

// NormalizedMessage is a counted message. Name is the sender's display name
// as carried by the message, possibly empty.
type NormalizedMessage struct {
	ID   models.ParticipantID
	Date time.Time
	Name string
}

// Normalize decides whether msg counts. Only genuine user messages with a
// user-type sender and a parseable date are accepted.
func Normalize(msg models.RawMessage) (NormalizedMessage, SkipReason, bool) {
	if msg.Type != messageType {
		return NormalizedMessage{}, SkipService, false
	}

	raw := strings.TrimSpace(string(msg.FromID))
	if raw == "" {
		return NormalizedMessage{}, SkipNoSender, false
	}
	if strings.HasPrefix(raw, channelPrefix) {
		return NormalizedMessage{}, SkipChannel, false
	}
	raw = strings.TrimPrefix(raw, userPrefix)
	if !models.IsDigits(raw) {
		return NormalizedMessage{}, SkipBadSender, false
	}
	id, err := models.ParseParticipantID(raw)
	if err != nil {
		return NormalizedMessage{}, SkipBadSender, false
	}

	date, err := models.ParseDate(models.DatePart(msg.Date))
	if err != nil {
		return NormalizedMessage{}, SkipBadDate, false
	}

	return NormalizedMessage{ID: id, Date: date, Name: CleanName(msg.From)}, "", true
}

// CleanName puts a display name in NFC form on a single line.
func CleanName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return norm.NFC.String(name)
}
