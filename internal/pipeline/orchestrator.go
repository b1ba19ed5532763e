package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/nikhilmaddirala/carnatic-abc/internal/errors"
	"github.com/nikhilmaddirala/carnatic-abc/internal/notation"
	"github.com/nikhilmaddirala/carnatic-abc/internal/progress"
	"github.com/nikhilmaddirala/carnatic-abc/internal/songs"
)

// Config holds pipeline configuration
type Config struct {
	InputPath string
	Type      songs.InputType // auto-detected from the file name when empty
	OutputDir string          // defaults to an outputs/ dir next to inputs/
	Song      string          // song name for reporting; derived from the path when empty
}

// DefaultConfig returns default pipeline configuration
func DefaultConfig() Config {
	return Config{}
}

// Result describes the outputs produced for one input file
type Result struct {
	Song       string
	Input      string
	Type       songs.InputType
	OutputDir  string
	Outputs    []string // file names written, in order
	MusicLines int      // music lines transcoded
}

// BatchResult collects per-item outcomes of a library run
type BatchResult struct {
	Results []*Result
	Errors  []error
}

// Failed reports whether any item in the batch failed
func (b *BatchResult) Failed() bool { return len(b.Errors) > 0 }

// Orchestrator coordinates conversion of input files into their
// derived ABC outputs. All file I/O lives here; the notation package
// stays pure.
type Orchestrator struct {
	progress *progress.Reporter
}

// NewOrchestrator creates a new pipeline orchestrator
func NewOrchestrator(out io.Writer, verbose bool) *Orchestrator {
	return &Orchestrator{
		progress: progress.NewReporter(out, verbose),
	}
}

// Execute converts one CABC input file and writes its derived outputs.
// A notes input yields notes.abc and notes-swaras.abc; a notes-lyrics
// input additionally yields the lyric-bearing variants.
func (o *Orchestrator) Execute(ctx context.Context, cfg Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	song := cfg.Song
	if song == "" {
		song = songs.SongName(cfg.InputPath)
	}
	typ := cfg.Type
	if typ == "" {
		typ = songs.DetectType(cfg.InputPath)
	}
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = songs.DefaultOutputDir(cfg.InputPath)
	}

	// Stage 1: read
	o.progress.StartStage(progress.StageRead)
	if err := songs.ValidateInput(cfg.InputPath); err != nil {
		return nil, apperrors.NewConvertError(song, "read", cfg.InputPath, err)
	}
	data, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return nil, apperrors.NewConvertError(song, "read", cfg.InputPath, err)
	}
	o.progress.StageComplete("Read %s (%s)", filepath.Base(cfg.InputPath), typ)

	// Stage 2: transcode
	o.progress.StartStage(progress.StageConvert)
	abc := notation.Convert(string(data))
	musicLines := countMusicLines(abc)
	o.progress.StageComplete("Transcoded %d music line(s)", musicLines)

	// Stage 3: swara lyric generation, per output variant
	o.progress.StartStage(progress.StageSwaras)
	files := make(map[string]string)
	switch typ {
	case songs.TypeNotesLyrics:
		files["notes-lyrics.abc"] = abc
		files["notes-swaras-lyrics.abc"] = notation.AddSwaraLyrics(abc)
		noLyrics := notation.StripLyrics(abc)
		files["notes.abc"] = noLyrics
		files["notes-swaras.abc"] = notation.AddSwaraLyrics(noLyrics)
	default:
		files["notes.abc"] = abc
		files["notes-swaras.abc"] = notation.AddSwaraLyrics(abc)
	}
	o.progress.StageComplete("Prepared %d output variant(s)", len(files))

	// Stage 4: write
	o.progress.StartStage(progress.StageWrite)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, apperrors.NewConvertError(song, "write", outputDir,
			fmt.Errorf("%w: %v", apperrors.ErrUnwritableOutput, err))
	}
	result := &Result{
		Song:       song,
		Input:      cfg.InputPath,
		Type:       typ,
		OutputDir:  outputDir,
		MusicLines: musicLines,
	}
	for _, name := range outputOrder {
		content, ok := files[name]
		if !ok {
			continue
		}
		if err := writeFileAtomic(filepath.Join(outputDir, name), content); err != nil {
			return nil, apperrors.NewConvertError(song, "write", name, err)
		}
		o.progress.Update("Wrote %s", name)
		result.Outputs = append(result.Outputs, name)
	}
	o.progress.StageComplete("Wrote %d file(s) to %s", len(result.Outputs), outputDir)

	return result, nil
}

// ExecuteAll converts every input discovered under songsDir. A failing
// item is recorded and the batch moves on.
func (o *Orchestrator) ExecuteAll(ctx context.Context, songsDir string) (*BatchResult, error) {
	lib := songs.NewLibrary(songsDir)
	inputs, err := lib.FindInputs()
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{}
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		res, err := o.Execute(ctx, Config{
			InputPath: in.Path,
			Type:      in.Type,
			Song:      in.Song,
		})
		if err != nil {
			o.progress.Error(err)
			batch.Errors = append(batch.Errors, err)
			continue
		}
		batch.Results = append(batch.Results, res)
	}
	return batch, nil
}

// outputOrder fixes the order outputs are written and reported in
var outputOrder = []string{
	"notes.abc",
	"notes-swaras.abc",
	"notes-lyrics.abc",
	"notes-swaras-lyrics.abc",
}

func countMusicLines(doc string) int {
	n := 0
	for _, line := range strings.Split(doc, "\n") {
		if notation.Classify(line) == notation.KindMusic {
			n++
		}
	}
	return n
}

// writeFileAtomic writes content via a temp file in the destination
// directory and renames it into place, so a failed write never leaves
// a truncated output under the final name.
func writeFileAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
