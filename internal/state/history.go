package state

import "log"

// History is an undo/redo stack of complete canvas snapshots. entries[0] is
// always the empty board and cursor always indexes a valid entry.
//
// Entries are never modified after they are recorded, so Undo and Redo can
// hand out the stored snapshot by value without copying its contents.
type History struct {
	entries []CanvasState
	cursor  int
}

// NewHistory returns a history holding only the empty initial state.
func NewHistory() *History {
	return &History{entries: []CanvasState{{}}}
}

// Record discards every entry after the cursor, appends cs and moves the
// cursor onto it.
func (h *History) Record(cs CanvasState) {
	cs = cs.settled()
	h.entries = append(h.entries[:h.cursor+1], cs)
	h.cursor = len(h.entries) - 1
}

// Undo steps the cursor back one entry and returns the snapshot now under it.
// At the first entry it returns the current snapshot and false.
func (h *History) Undo() (CanvasState, bool) {
	if h.cursor == 0 {
		return h.entries[h.cursor], false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Redo steps the cursor forward one entry. At the last entry it returns the
// current snapshot and false.
func (h *History) Redo() (CanvasState, bool) {
	if h.cursor == len(h.entries)-1 {
		return h.entries[h.cursor], false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Clear drops all history and resets to the single empty entry.
func (h *History) Clear() {
	dropped := len(h.entries) - 1
	h.entries = []CanvasState{{}}
	h.cursor = 0
	if dropped > 0 {
		log.Printf("[HISTORY] Cleared %d entries", dropped)
	}
}

// Current returns the snapshot under the cursor.
func (h *History) Current() CanvasState { return h.entries[h.cursor] }

// Len returns the number of entries, including the initial empty one.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the index of the active entry.
func (h *History) Cursor() int { return h.cursor }

func (h *History) CanUndo() bool { return h.cursor > 0 }

func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }
