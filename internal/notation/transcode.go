package notation

import "strings"

// swaraToNote maps Carnatic swara letters to Western note letters.
// Case carries the octave register and is preserved. The lowercase
// rest letter 'r' is deliberately absent: it stays a rest.
var swaraToNote = map[byte]byte{
	'S': 'C', 'R': 'D', 'G': 'E', 'M': 'F',
	'P': 'G', 'D': 'A', 'N': 'B',
	's': 'c', 'g': 'e', 'm': 'f',
	'p': 'g', 'd': 'a', 'n': 'b',
}

// Rest is the rest letter shared by both notations.
const Rest = 'r'

func isSwaraLetter(c byte) bool {
	if c == Rest {
		return true
	}
	_, ok := swaraToNote[c]
	return ok
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// TranscodeLine rewrites every swara token in a music line into its
// Western note, leaving bar lines, spaces and anything unrecognized
// untouched. A token is <swara-letter><digits?><'-'?>, scanned left to
// right; the digit run and tie marker are copied through verbatim.
func TranscodeLine(line string) string {
	var b strings.Builder
	b.Grow(len(line))

	i := 0
	for i < len(line) {
		c := line[i]
		if !isSwaraLetter(c) {
			b.WriteByte(c)
			i++
			continue
		}

		// Duration digits, then an optional tie.
		j := i + 1
		for j < len(line) && isDigit(line[j]) {
			j++
		}
		if j < len(line) && line[j] == '-' {
			j++
		}

		if c == Rest {
			b.WriteByte(c)
		} else {
			b.WriteByte(swaraToNote[c])
		}
		b.WriteString(line[i+1 : j])
		i = j
	}
	return b.String()
}

// Convert transcodes a whole CABC document to ABC. Headers, comments,
// lyrics and blank lines pass through byte for byte; only music lines
// are rewritten. The line count never changes.
func Convert(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		if Classify(line) == KindMusic {
			lines[i] = TranscodeLine(line)
		}
	}
	return strings.Join(lines, "\n")
}
