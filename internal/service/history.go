package service

import "wordlens/internal/domain"

// History is a linear undo/redo stack of searched words. Recording while
// the cursor is behind the tail discards the forward entries.
type History struct {
	entries []string
	cursor  int
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{cursor: -1}
}

// Record appends word unless it equals the entry at the cursor
func (h *History) Record(word string) {
	word = domain.NormalizeWord(word)
	if word == "" {
		return
	}
	if h.cursor >= 0 && h.entries[h.cursor] == word {
		return
	}

	if h.cursor < len(h.entries)-1 {
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, word)
	h.cursor = len(h.entries) - 1
}

// GoBack moves the cursor one step back and returns the word there
func (h *History) GoBack() (string, bool) {
	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// GoForward moves the cursor one step forward and returns the word there
func (h *History) GoForward() (string, bool) {
	if h.cursor >= len(h.entries)-1 {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// CanGoBack reports whether GoBack would move, given whether a
// navigation-triggered search is still in flight
func (h *History) CanGoBack(navigating bool) bool {
	return !navigating && h.cursor > 0
}

// CanGoForward reports whether GoForward would move
func (h *History) CanGoForward(navigating bool) bool {
	return !navigating && h.cursor < len(h.entries)-1
}

// Entries returns a copy of the recorded words
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Cursor returns the current index, -1 when empty
func (h *History) Cursor() int {
	return h.cursor
}

// Current returns the word at the cursor
func (h *History) Current() string {
	if h.cursor < 0 {
		return ""
	}
	return h.entries[h.cursor]
}
