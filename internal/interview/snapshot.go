package interview

import "taxprep-backend/internal/interview/recommendations"

// SnapshotVersion is the schema version of the serialized session payload.
const SnapshotVersion = 1

// Snapshot is the serializable form of a session: the recorded answers plus
// enough bookkeeping to resume where the interview left off. The
// recommendation list is not stored; it is a pure function of the answers
// and is rebuilt on restore.
type Snapshot struct {
	Version  int      `json:"version"`
	State    State    `json:"state"`
	Answers  []Answer `json:"answers"`
	Pending  []string `json:"pending"`
	Surfaced []string `json:"surfaced"`
}

// Snapshot captures the session for persistence.
func (s *Session) Snapshot() Snapshot {
	surfaced := make([]string, 0, len(s.surfaced))
	for _, id := range s.catalog.order {
		if s.surfaced[id] {
			surfaced = append(surfaced, id)
		}
	}
	return Snapshot{
		Version:  SnapshotVersion,
		State:    s.state,
		Answers:  s.answers.All(),
		Pending:  append([]string(nil), s.pending...),
		Surfaced: surfaced,
	}
}

// Restore rebuilds a session from a snapshot taken against the same
// catalog. Answers or queue entries referencing questions no longer in the
// catalog are dropped rather than failing the restore.
func Restore(catalog *Catalog, snap Snapshot) *Session {
	s := NewSession(catalog)
	if snap.State != "" {
		s.state = snap.State
	}
	for _, a := range snap.Answers {
		if _, ok := catalog.Get(a.QuestionID); !ok {
			continue
		}
		s.answers.byID[a.QuestionID] = a
	}
	for _, id := range snap.Pending {
		if _, ok := catalog.Get(id); ok {
			s.pending = append(s.pending, id)
		}
	}
	for _, id := range snap.Surfaced {
		if _, ok := catalog.Get(id); ok {
			s.surfaced[id] = true
		}
	}
	if s.answers.Len() > 0 {
		s.recs = recommendations.Rebuild(s.answers.Values())
	}
	return s
}
