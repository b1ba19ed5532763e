package notation

import "strings"

// LineKind classifies a physical line of a song document. The same
// classification drives both the transcoding pass and the lyric
// generation pass, so the two can never disagree on what a line is.
type LineKind int

const (
	KindBlank LineKind = iota
	KindComment
	KindHeader
	KindLyrics
	KindMusic
)

func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindHeader:
		return "header"
	case KindLyrics:
		return "lyrics"
	case KindMusic:
		return "music"
	}
	return "unknown"
}

// headerColonWindow is how far into a line a ':' still marks an ABC
// header field (X:, T:, M:, K: and friends). A music line with a ':'
// that early (an inline annotation, say) gets misread as a header.
// Known limitation, kept as-is.
const headerColonWindow = 10

// Classify returns the kind of a single line. Rules apply in priority
// order: blank, then '%' comment, then header field, then "w:" lyrics,
// otherwise music.
func Classify(line string) LineKind {
	if strings.TrimSpace(line) == "" {
		return KindBlank
	}
	if strings.HasPrefix(line, "%") {
		return KindComment
	}
	if strings.HasPrefix(line, "w:") {
		return KindLyrics
	}
	window := line
	if len(window) > headerColonWindow {
		window = window[:headerColonWindow]
	}
	if strings.ContainsRune(window, ':') {
		return KindHeader
	}
	return KindMusic
}
