package models

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// Export is a single-chat history export. Messages are kept raw so that one
// malformed record does not spoil the whole document.
type Export struct {
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Messages []json.RawMessage `json:"messages"`
}

type RawMessage struct {
	ID     int64    `json:"id"`
	Type   string   `json:"type"`
	Date   string   `json:"date"`
	From   string   `json:"from"`
	FromID SenderID `json:"from_id"`
}

// SenderID holds the raw sender identifier. Current exports use prefixed
// strings ("user42", "channel99"), older ones a bare number.
type SenderID string

func (s *SenderID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = SenderID(str)
		return nil
	}
	if _, err := strconv.ParseInt(string(data), 10, 64); err != nil {
		return fmt.Errorf("from_id: unexpected value %s", data)
	}
	*s = SenderID(data)
	return nil
}

// Message decodes the i-th record of the export.
func (e *Export) Message(i int) (RawMessage, error) {
	var msg RawMessage
	err := json.Unmarshal(e.Messages[i], &msg)
	return msg, err
}
