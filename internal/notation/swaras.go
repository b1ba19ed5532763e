package notation

import "strings"

// noteToSwara names the seven scale degrees. Case on a note letter
// only encodes octave, so lookups go through the uppercase identity.
var noteToSwara = map[byte]string{
	'C': "sa", 'D': "ri", 'E': "ga", 'F': "ma",
	'G': "pa", 'A': "da", 'B': "ni",
}

func isNoteLetter(c byte) bool {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	_, ok := noteToSwara[c]
	return ok
}

func isOctaveMark(c byte) bool { return c == '\'' || c == ',' }

// SwaraLine derives the sung-syllable line for one ABC music line.
// Each note token <letter><octave-marks?><digits?><'-'?> contributes
// its swara name; a tied note adds duration-1 "-" continuations, a
// held untied note adds duration-1 "_" continuations. The rest letter
// contributes a single "ri" regardless of its suffix, voiced as the
// second degree by convention. Octave marks are scanned past but not
// yet interpreted.
func SwaraLine(musicLine string) string {
	var swaras []string

	i := 0
	for i < len(musicLine) {
		c := musicLine[i]
		if c != Rest && !isNoteLetter(c) {
			i++
			continue
		}
		i++
		for i < len(musicLine) && isOctaveMark(musicLine[i]) {
			i++
		}
		start := i
		for i < len(musicLine) && isDigit(musicLine[i]) {
			i++
		}
		duration := 1
		if i > start {
			duration = 0
			for _, d := range musicLine[start:i] {
				duration = duration*10 + int(d-'0')
			}
		}
		tied := i < len(musicLine) && musicLine[i] == '-'
		if tied {
			i++
		}

		if c == Rest {
			swaras = append(swaras, "ri")
			continue
		}
		base := c
		if base >= 'a' && base <= 'z' {
			base -= 'a' - 'A'
		}
		swaras = append(swaras, noteToSwara[base])
		marker := "_"
		if tied {
			marker = "-"
		}
		for n := duration; n > 1; n-- {
			swaras = append(swaras, marker)
		}
	}

	return strings.Join(swaras, " ")
}

// AddSwaraLyrics inserts a generated "w:" swara line after every music
// line of an ABC document. When the source already carries a lyric
// line right after the music line, it stays, placed after the
// generated one. Single forward pass, one line of lookahead.
func AddSwaraLyrics(doc string) string {
	lines := strings.Split(doc, "\n")
	result := make([]string, 0, len(lines)*2)

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		result = append(result, line)

		if Classify(line) != KindMusic {
			continue
		}
		if swaras := SwaraLine(line); swaras != "" {
			result = append(result, "w:"+swaras)
		}
		if i+1 < len(lines) && Classify(lines[i+1]) == KindLyrics {
			i++
			result = append(result, lines[i])
		}
	}

	return strings.Join(result, "\n")
}

// StripLyrics removes every lyric line from an ABC document. Lines are
// dropped, not blanked, so following lines shift up.
func StripLyrics(doc string) string {
	lines := strings.Split(doc, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if Classify(line) != KindLyrics {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
