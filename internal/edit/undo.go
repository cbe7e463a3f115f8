package edit

// DefaultMaxDepth bounds undo history when no explicit depth is given.
const DefaultMaxDepth = 100

// UndoStack keeps bounded undo and redo history for one editing
// session. It stores executed commands and synthesizes inverses on
// demand; the caller applies what Undo/Redo return. Not safe for
// concurrent use — each stack belongs to exactly one editing session.
type UndoStack struct {
	undo     []Command
	redo     []Command
	maxDepth int
}

func NewUndoStack(maxDepth int) *UndoStack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &UndoStack{maxDepth: maxDepth}
}

// Push records an already-applied command. New history invalidates
// forward history, so the redo stack is cleared. Once the depth limit
// is exceeded the oldest entries are evicted.
func (s *UndoStack) Push(cmd Command) {
	s.redo = s.redo[:0]
	s.undo = append(s.undo, cmd)
	if len(s.undo) > s.maxDepth {
		n := copy(s.undo, s.undo[len(s.undo)-s.maxDepth:])
		clear(s.undo[n:])
		s.undo = s.undo[:n]
	}
}

// Undo pops the most recent command, moves it to the redo stack, and
// returns its inverse for the caller to apply. Reports false when
// there is nothing to undo.
func (s *UndoStack) Undo() (Command, bool) {
	if len(s.undo) == 0 {
		return nil, false
	}
	cmd := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, cmd)
	return Inverse(cmd), true
}

// Redo pops the most recently undone command, moves it back to the
// undo stack, and returns the original command for re-application.
// Reports false when there is nothing to redo.
func (s *UndoStack) Redo() (Command, bool) {
	if len(s.redo) == 0 {
		return nil, false
	}
	cmd := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, cmd)
	return cmd, true
}

func (s *UndoStack) CanUndo() bool { return len(s.undo) > 0 }
func (s *UndoStack) CanRedo() bool { return len(s.redo) > 0 }

// Depth returns the number of undoable commands.
func (s *UndoStack) Depth() int { return len(s.undo) }

// Clear drops all history.
func (s *UndoStack) Clear() {
	s.undo = s.undo[:0]
	s.redo = s.redo[:0]
}
