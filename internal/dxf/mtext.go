package dxf

import "strings"

// CleanMText strips MTEXT inline formatting. Paragraph breaks become
// newlines, stacked fractions become "a/b", and escaped braces and
// backslashes are kept as literals.
func CleanMText(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '{', '}':
			continue
		case '\\':
		default:
			b.WriteRune(r)
			continue
		}

		if i+1 >= len(runes) {
			break
		}
		i++
		switch code := runes[i]; code {
		case 'P', 'X':
			b.WriteByte('\n')
		case '~':
			b.WriteByte(' ')
		case '\\', '{', '}':
			b.WriteRune(code)
		case 'L', 'l', 'O', 'o', 'K', 'k':
			// underline, overline and strike toggles
		case 'S':
			end := indexFrom(runes, i+1, ';')
			frac := string(runes[i+1 : end])
			frac = strings.NewReplacer("^", "/", "#", "/").Replace(frac)
			b.WriteString(strings.TrimSpace(frac))
			i = end
		case 'A', 'C', 'c', 'F', 'f', 'H', 'h', 'Q', 'q', 'T', 't', 'W', 'w', 'p':
			i = indexFrom(runes, i+1, ';')
		default:
			b.WriteRune('\\')
			b.WriteRune(code)
		}
	}
	return b.String()
}

// indexFrom returns the index of sep at or after from, or len(runes).
func indexFrom(runes []rune, from int, sep rune) int {
	for j := from; j < len(runes); j++ {
		if runes[j] == sep {
			return j
		}
	}
	return len(runes)
}
