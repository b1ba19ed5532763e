package notation

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		line string
		want LineKind
	}{
		{"Empty", "", KindBlank},
		{"WhitespaceOnly", "   \t", KindBlank},
		{"Comment", "% arranger notes", KindComment},
		{"HeaderField", "T:Sri Govinda", KindHeader},
		{"HeaderColonLate", "X:1", KindHeader},
		{"Lyrics", "w:sa ri ga ma", KindLyrics},
		{"Music", "C D E F | G A B c |", KindMusic},
		{"MusicWithLateColon", "C D E F G A B c | \"x:\" C", KindMusic},

		// Accepted limitation: an early ':' on a music line reads as
		// a header field.
		{"MusicWithEarlyColon", "C \"a:\" D E", KindHeader},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.line); got != tc.want {
				t.Errorf("Classify(%q) = %v, want %v", tc.line, got, tc.want)
			}
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	lines := []string{"X:1", "w:sa", "% c", "", "C D E F"}
	for _, line := range lines {
		first := Classify(line)
		for i := 0; i < 3; i++ {
			if got := Classify(line); got != first {
				t.Fatalf("Classify(%q) unstable: %v then %v", line, first, got)
			}
		}
	}
}
