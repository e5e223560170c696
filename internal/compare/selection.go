package compare

import "github.com/megambeast/fincompare/internal/models"

// Toggle flips a product's membership in the comparison selection. Removing
// always succeeds; adding appends at the end and is silently ignored once
// the selection holds MaxSelection ids. The input slice is not mutated.
func Toggle(selection []string, id string) []string {
	for i, sel := range selection {
		if sel == id {
			out := make([]string, 0, len(selection)-1)
			out = append(out, selection[:i]...)
			return append(out, selection[i+1:]...)
		}
	}

	if len(selection) >= models.MaxSelection {
		out := make([]string, len(selection))
		copy(out, selection)
		return out
	}

	out := make([]string, 0, len(selection)+1)
	out = append(out, selection...)
	return append(out, id)
}
