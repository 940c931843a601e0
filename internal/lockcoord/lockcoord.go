// Package lockcoord derives the advisory-lock keys and row-lock
// ordering that serialize every pair of operations able to race on the
// same wallets, per spec.md §4.1.
package lockcoord

import (
	"sort"
	"strings"
)

// AdvisoryKey produces a deterministic signed 64-bit integer from the
// set of participating user ids and the asset-type id of a pending
// operation. It is order-insensitive with respect to the input parts,
// so a SPEND (user->system) and a TOP_UP (system->user) on the same
// (user, asset) pair collide on the same key and serialize against
// each other before either touches a row.
//
// A 64-bit hash can collide across unrelated tuples; that only causes
// spurious serialization, never an incorrect result, because the
// row-lock ordering below still correctly serializes true conflicts.
func AdvisoryKey(parts ...string) int64 {
	sorted := append([]string(nil), parts...)
	sort.Strings(sorted)
	joined := strings.Join(sorted, "|")

	var h int64
	for i := 0; i < len(joined); i++ {
		h = (h << 5) - h + int64(joined[i])
	}
	return h
}

// OrderUserIDs returns the given user ids in ascending lexicographic
// order. Locking wallet rows in this order, regardless of which party
// initiated the operation, breaks cycle formation under mixed
// operations interleaving across overlapping wallets.
func OrderUserIDs(ids ...string) []string {
	ordered := append([]string(nil), ids...)
	sort.Strings(ordered)
	return ordered
}
