package t2048

// DefaultHistoryLimit is the number of history entries kept in memory.
const DefaultHistoryLimit = 20

// HistoryEntry is the state captured right before a move was applied.
type HistoryEntry struct {
	Grid     Grid `json:"grid"`
	Score    int  `json:"score"`
	UndoUsed int  `json:"undo_used"`
}

// clone returns a deep copy so entries never alias a live grid.
func (e HistoryEntry) clone() HistoryEntry {
	e.Grid = e.Grid.Clone()
	return e
}

// History is a bounded stack of pre-move states.
// Once Limit entries are held, pushing evicts the oldest one.
type History struct {
	entries []HistoryEntry
	limit   int
}

// NewHistory creates a history holding at most limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records an entry, evicting the oldest when full.
func (h *History) Push(e HistoryEntry) {
	h.entries = append(h.entries, e.clone())
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0:0], h.entries[over:]...)
	}
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Len returns the number of held entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Limit returns the retention bound.
func (h *History) Limit() int {
	return h.limit
}

// Tail returns copies of the newest n entries, oldest first.
func (h *History) Tail(n int) []HistoryEntry {
	if n <= 0 || len(h.entries) == 0 {
		return nil
	}
	start := max(len(h.entries)-n, 0)
	out := make([]HistoryEntry, 0, len(h.entries)-start)
	for _, e := range h.entries[start:] {
		out = append(out, e.clone())
	}
	return out
}
