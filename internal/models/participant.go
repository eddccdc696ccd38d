package models

import (
	"fmt"
	"strconv"
)

// ParticipantID is the canonical numeric id of a user-type sender.
type ParticipantID int64

func (p ParticipantID) String() string {
	return strconv.FormatInt(int64(p), 10)
}

// ParseParticipantID accepts plain decimal digits only; signs are rejected.
func ParseParticipantID(s string) (ParticipantID, error) {
	if !IsDigits(s) {
		return 0, fmt.Errorf("invalid participant id %q", s)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ParticipantID(v), nil
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
