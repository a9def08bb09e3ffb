package model

// History keeps the hashes of the most recent boards so repeating
// configurations (still lifes, period-2 oscillators) can be recognised.
type History struct {
	size   int
	hashes []string
}

// NewHistory returns a History remembering at most size hashes
func NewHistory(size int) *History {
	return &History{size: max(1, size)}
}

// Push records hash as the newest entry, evicting the oldest when full
func (h *History) Push(hash string) {
	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// Repeats reports whether hash matches any of the last period entries
func (h *History) Repeats(hash string, period int) bool {
	for i := 1; i <= period && i <= len(h.hashes); i++ {
		if h.hashes[len(h.hashes)-i] == hash {
			return true
		}
	}
	return false
}

// Reset forgets every recorded hash
func (h *History) Reset() {
	h.hashes = nil
}
