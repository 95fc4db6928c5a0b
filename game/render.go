package game

import "strings"

const tallyGroup = 5

// RenderPile draws a pile as tally marks grouped by five, e.g. "||||| ||".
func RenderPile(pile int) string {
	if pile <= 0 {
		return "(empty)"
	}
	var b strings.Builder
	for i := 0; i < pile; i++ {
		if i > 0 && i%tallyGroup == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('|')
	}
	return b.String()
}
