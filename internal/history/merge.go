package history

import (
	"sort"
	"time"
)

// MergeWithRemote combines remote and local rounds, deduplicating by
// ID with the remote copy winning, and returns them newest first.
// Fetched remote copies carry PendingSync=false, so a locally-pending
// round that already reached the remote stops counting as unsynced in
// the merged view even before MarkSynced clears the local flag.
// CreatedAt is normalized to RFC 3339 on every record so rows from
// either side render the same way.
func MergeWithRemote(local, remote []*GameResult) []*GameResult {
	seen := make(map[string]bool, len(remote))
	merged := make([]*GameResult, 0, len(remote)+len(local))
	for _, r := range remote {
		seen[r.ID] = true
		merged = append(merged, r)
	}
	for _, r := range local {
		if !seen[r.ID] {
			merged = append(merged, r)
		}
	}

	for _, r := range merged {
		if r.CreatedAt == "" {
			if !r.CompletedAt.IsZero() {
				r.CreatedAt = r.CompletedAt.UTC().Format(time.RFC3339)
			} else {
				r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CompletedAt.After(merged[j].CompletedAt)
	})
	return merged
}
