package router

// Stack is the back-navigation history. The most recent entry is last.
// The same screen may appear more than once.
type Stack struct {
	entries []Screen
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]Screen, 0),
	}
}

// Push adds a screen to the top of the stack. Nil screens are ignored.
func (s *Stack) Push(screen Screen) {
	if isNil(screen) {
		return
	}
	s.entries = append(s.entries, screen)
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *Stack) Pop() Screen {
	if len(s.entries) == 0 {
		return nil
	}
	last := len(s.entries) - 1
	entry := s.entries[last]
	s.entries[last] = nil
	s.entries = s.entries[:last]
	return entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() Screen {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}

// Snapshot returns a copy of the entries, oldest first.
func (s *Stack) Snapshot() []Screen {
	out := make([]Screen, len(s.entries))
	copy(out, s.entries)
	return out
}
