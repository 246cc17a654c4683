package repository

import (
	"sort"

	"github.com/google/uuid"
)

// sortedIDs returns the keys in a fixed order so concurrent batches lock
// rows in the same sequence.
func sortedIDs(m map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
