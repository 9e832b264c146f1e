package image

import (
	"fmt"
	"sort"
)

var (
	ErrUnknownName   = fmt.Errorf("unknown image name")
	ErrDuplicateName = fmt.Errorf("duplicate image name")
	ErrOrderLength   = fmt.Errorf("order does not name every image")
)

// Sequence is the user ordered list of images. Its order is the frame order of
// every export.
type Sequence struct {
	refs []Reference
}

func NewSequence(refs []Reference) *Sequence {
	s := &Sequence{refs: make([]Reference, len(refs))}
	copy(s.refs, refs)
	return s
}

func (s *Sequence) Len() int {
	return len(s.refs)
}

func (s *Sequence) At(i int) (Reference, bool) {
	if i < 0 || i >= len(s.refs) {
		return Reference{}, false
	}
	return s.refs[i], true
}

func (s *Sequence) References() []Reference {
	out := make([]Reference, len(s.refs))
	copy(out, s.refs)
	return out
}

// Paths is the plain ordered path list handed to the frame pipeline.
func (s *Sequence) Paths() []string {
	out := make([]string, len(s.refs))
	for i, r := range s.refs {
		out[i] = r.Path
	}
	return out
}

// MoveUp swaps every selected row with the row above it, walking the selection
// top to bottom. Reaching the top stops the walk, rows already moved stay
// moved. The returned slice is the selection after the move.
func (s *Sequence) MoveUp(selected ...int) []int {
	rows := sortedRows(selected)
	for i, row := range rows {
		above := row - 1
		if above < 0 || row >= len(s.refs) {
			return rows
		}
		s.refs[row], s.refs[above] = s.refs[above], s.refs[row]
		rows[i] = above
	}
	return rows
}

// MoveDown is the mirror of MoveUp, walking the selection bottom to top.
func (s *Sequence) MoveDown(selected ...int) []int {
	rows := sortedRows(selected)
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		below := row + 1
		if row < 0 || below >= len(s.refs) {
			return rows
		}
		s.refs[row], s.refs[below] = s.refs[below], s.refs[row]
		rows[i] = below
	}
	return rows
}

// Reorder replaces the order with an explicit one given by base file names.
// Every image must be named exactly once.
func (s *Sequence) Reorder(names []string) error {
	if len(names) != len(s.refs) {
		return fmt.Errorf("%w: got %d names for %d images", ErrOrderLength, len(names), len(s.refs))
	}

	byName := make(map[string]Reference, len(s.refs))
	for _, r := range s.refs {
		byName[r.Name()] = r
	}

	seen := make(map[string]bool, len(names))
	out := make([]Reference, 0, len(names))
	for _, name := range names {
		r, ok := byName[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownName, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		seen[name] = true
		out = append(out, r)
	}

	s.refs = out
	return nil
}

// sortedRows is the selection in ascending order, each row once.
func sortedRows(selected []int) []int {
	rows := make([]int, 0, len(selected))
	seen := make(map[int]bool, len(selected))
	for _, row := range selected {
		if !seen[row] {
			seen[row] = true
			rows = append(rows, row)
		}
	}
	sort.Ints(rows)
	return rows
}
