package repo

// LogEntry is one record in a log listing.
type LogEntry struct {
	ID        string
	Message   string
	Timestamp string
	Parent    string
}

// Log walks HEAD's chain, most recent first, returning up to limit
// records (0 means unlimited).
func (r *Repository) Log(limit int) ([]LogEntry, error) {
	st, err := r.loadState()
	if err != nil {
		return nil, err
	}

	var entries []LogEntry
	cur := st.head.Tip
	for !cur.Empty() {
		if limit > 0 && len(entries) >= limit {
			break
		}
		commit, err := r.getCommit(cur)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LogEntry{
			ID:        commit.ID.String(),
			Message:   commit.Message,
			Timestamp: commit.Timestamp,
			Parent:    commit.Parent.String(),
		})
		cur = commit.Parent
	}
	return entries, nil
}
