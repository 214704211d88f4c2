package ingestion

import "github.com/locvowork/hrrecords/internal/domain"

// DuplicateTracker remembers the ids seen during one ingestion run.
// It is not safe for concurrent use; each run owns its own tracker.
type DuplicateTracker struct {
	seen map[string]struct{}
}

func NewDuplicateTracker() *DuplicateTracker {
	return &DuplicateTracker{seen: make(map[string]struct{})}
}

// Track reports whether the candidate should be persisted. Comment rows are
// skipped without being recorded.
func (t *DuplicateTracker) Track(c *domain.CandidateRecord) (bool, error) {
	if c.IsComment() {
		return false, nil
	}
	id := *c.ID
	if _, ok := t.seen[id]; ok {
		return false, domain.DuplicateRowf("ID %s is duplicated", id)
	}
	t.seen[id] = struct{}{}
	return true, nil
}

// Len returns the number of distinct ids tracked so far.
func (t *DuplicateTracker) Len() int {
	return len(t.seen)
}
