package annotate

import (
	"strings"
	"unicode"
)

// CleanNote normalizes a comma-separated note: each part is trimmed, empty
// parts are dropped and the rest are joined with sep in their original order.
// It returns "" when nothing survives.
func CleanNote(note, sep string) string {
	note = trim(note)
	if note == "" {
		return ""
	}
	parts := strings.Split(note, ",")
	kept := parts[:0]
	for _, part := range parts {
		if p := trim(part); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// isSpace is unicode.IsSpace plus the ASCII information separators 0x1C-0x1F.
func isSpace(r rune) bool {
	if r >= 0x1c && r <= 0x1f {
		return true
	}
	return unicode.IsSpace(r)
}
