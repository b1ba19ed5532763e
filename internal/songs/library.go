package songs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/nikhilmaddirala/carnatic-abc/internal/errors"
)

// InputExt is the required extension for CABC input files.
const InputExt = ".cabc.abc"

// InputType tells the pipeline which derived outputs to produce
type InputType string

const (
	TypeNotes       InputType = "notes"
	TypeNotesLyrics InputType = "notes-lyrics"
)

// inputFiles maps the recognized input file names to their type. The
// taala variant carries extra percussion markup but converts the same
// way a notes-lyrics file does.
var inputFiles = []struct {
	name string
	typ  InputType
}{
	{"notes" + InputExt, TypeNotes},
	{"notes-lyrics" + InputExt, TypeNotesLyrics},
	{"notes-lyrics-taala" + InputExt, TypeNotesLyrics},
}

// Input is one discovered CABC file
type Input struct {
	Path string
	Type InputType
	Song string // song directory name
}

// Library discovers CABC inputs under a songs directory. Layout is one
// directory per song, each with an inputs/ subdirectory; song
// directories starting with '_' are skipped.
type Library struct {
	Root string
}

// NewLibrary creates a library rooted at dir
func NewLibrary(dir string) *Library {
	return &Library{Root: dir}
}

// FindInputs walks the library and returns every recognized input file
func (l *Library) FindInputs() ([]Input, error) {
	entries, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, fmt.Errorf("read songs directory: %w", err)
	}

	var inputs []Input
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), "_") {
			continue
		}
		inputsDir := filepath.Join(l.Root, entry.Name(), "inputs")
		for _, f := range inputFiles {
			path := filepath.Join(inputsDir, f.name)
			if fileExists(path) {
				inputs = append(inputs, Input{Path: path, Type: f.typ, Song: entry.Name()})
			}
		}
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNoInputs, l.Root)
	}
	return inputs, nil
}

// ValidateInput checks that a standalone input path exists and carries
// the CABC extension
func ValidateInput(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", apperrors.ErrFileNotFound, path)
	}
	if !strings.HasSuffix(path, InputExt) {
		return fmt.Errorf("%w: got %s", apperrors.ErrBadExtension, filepath.Base(path))
	}
	return nil
}

// DetectType infers the input type from the file name
func DetectType(path string) InputType {
	if strings.Contains(filepath.Base(path), "notes-lyrics") {
		return TypeNotesLyrics
	}
	return TypeNotes
}

// SongName derives the song directory name for an input path laid out
// as <song>/inputs/<file>; returns "" for paths outside that layout.
func SongName(path string) string {
	parent := filepath.Dir(path)
	if filepath.Base(parent) != "inputs" {
		return ""
	}
	return filepath.Base(filepath.Dir(parent))
}

// DefaultOutputDir returns where derived outputs belong for an input:
// a sibling outputs/ directory when the input sits in inputs/, an
// outputs/ directory next to the file otherwise.
func DefaultOutputDir(inputPath string) string {
	parent := filepath.Dir(inputPath)
	if filepath.Base(parent) == "inputs" {
		return filepath.Join(filepath.Dir(parent), "outputs")
	}
	return filepath.Join(parent, "outputs")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
