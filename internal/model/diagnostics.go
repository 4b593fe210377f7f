package model

import "fmt"

// Diagnostics is an immutable set of data-quality notes. Components return
// their own Diagnostics alongside their result; the caller merges them at
// the boundary. There is no shared mutable note list.
type Diagnostics struct {
	notes []string
}

// Note returns a Diagnostics extended with one formatted note.
func (d Diagnostics) Note(format string, args ...any) Diagnostics {
	notes := make([]string, len(d.notes), len(d.notes)+1)
	copy(notes, d.notes)
	return Diagnostics{notes: append(notes, fmt.Sprintf(format, args...))}
}

// Merge returns the concatenation of d and other, in order.
func (d Diagnostics) Merge(other Diagnostics) Diagnostics {
	notes := make([]string, 0, len(d.notes)+len(other.notes))
	notes = append(notes, d.notes...)
	notes = append(notes, other.notes...)
	return Diagnostics{notes: notes}
}

// Notes returns a copy of the accumulated notes.
func (d Diagnostics) Notes() []string {
	notes := make([]string, len(d.notes))
	copy(notes, d.notes)
	return notes
}

func (d Diagnostics) Len() int { return len(d.notes) }
