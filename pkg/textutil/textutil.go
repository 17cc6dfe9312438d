// Package textutil formats help text for terminal output.
package textutil

import "strings"

// Wrap splits text into lines no longer than width, breaking on whitespace. A single word longer
// than width gets a line of its own. Empty text yields one empty line so callers can always index
// the first element.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var (
		lines   []string
		current strings.Builder
	)
	for _, word := range words {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	return append(lines, current.String())
}
