package models

import (
	"fmt"
	"sort"
)

// NameTable maps participant ids to display names.
type NameTable map[ParticipantID]string

func FallbackName(id ParticipantID) string {
	return fmt.Sprintf("User_%d", id)
}

// Resolve returns the stored name or the User_<id> placeholder.
func (n NameTable) Resolve(id ParticipantID) string {
	if name, ok := n[id]; ok {
		return name
	}
	return FallbackName(id)
}

// Merge inserts ids that are not yet known. Existing names are never
// overwritten and nothing is deleted. Returns the number of inserted ids.
func (n NameTable) Merge(seen NameTable) int {
	added := 0
	for id, name := range seen {
		if _, ok := n[id]; ok || name == "" {
			continue
		}
		n[id] = name
		added++
	}
	return added
}

func (n NameTable) SortedIDs() []ParticipantID {
	ids := make([]ParticipantID, 0, len(n))
	for id := range n {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
