package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCABC = `X:1
T:Test Song
M:4/4
L:1/4
K:C
S R G M | P D N s |
w:sa ri ga ma pa da ni sa`

func writeSong(t *testing.T, root, song, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, song, "inputs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecuteNotesLyrics(t *testing.T) {
	root := t.TempDir()
	input := writeSong(t, root, "test-song", "notes-lyrics.cabc.abc", testCABC)

	orch := NewOrchestrator(io.Discard, false)
	res, err := orch.Execute(context.Background(), Config{InputPath: input})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Song != "test-song" {
		t.Errorf("song = %q, want test-song", res.Song)
	}
	if res.MusicLines != 1 {
		t.Errorf("music lines = %d, want 1", res.MusicLines)
	}

	outputDir := filepath.Join(root, "test-song", "outputs")
	for _, name := range []string{"notes.abc", "notes-swaras.abc", "notes-lyrics.abc", "notes-swaras-lyrics.abc"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "notes-swaras-lyrics.abc"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(data), "\n")
	// Header block unchanged, then music, generated swaras, original lyrics.
	want := []string{
		"X:1",
		"T:Test Song",
		"M:4/4",
		"L:1/4",
		"K:C",
		"C D E F | G A B c |",
		"w:sa ri ga ma pa da ni sa",
		"w:sa ri ga ma pa da ni sa",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), data)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	stripped, err := os.ReadFile(filepath.Join(outputDir, "notes.abc"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(stripped), "w:") {
		t.Errorf("notes.abc still contains lyric lines:\n%s", stripped)
	}
}

func TestExecuteNotesOnly(t *testing.T) {
	root := t.TempDir()
	input := writeSong(t, root, "scale", "notes.cabc.abc", "X:1\nK:C\nS R G M |")

	orch := NewOrchestrator(io.Discard, false)
	res, err := orch.Execute(context.Background(), Config{InputPath: input})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Outputs) != 2 {
		t.Fatalf("outputs = %v, want notes.abc and notes-swaras.abc", res.Outputs)
	}

	data, err := os.ReadFile(filepath.Join(res.OutputDir, "notes-swaras.abc"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "w:sa ri ga ma") {
		t.Errorf("generated swara line missing:\n%s", data)
	}
}

func TestExecuteExplicitOutputDir(t *testing.T) {
	root := t.TempDir()
	input := writeSong(t, root, "scale", "notes.cabc.abc", "K:C\nS R |")
	outDir := filepath.Join(root, "custom-out")

	orch := NewOrchestrator(io.Discard, false)
	res, err := orch.Execute(context.Background(), Config{InputPath: input, OutputDir: outDir})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.OutputDir != outDir {
		t.Errorf("output dir = %q, want %q", res.OutputDir, outDir)
	}
	if _, err := os.Stat(filepath.Join(outDir, "notes.abc")); err != nil {
		t.Errorf("missing notes.abc in custom dir: %v", err)
	}
}

func TestExecuteAllContinuesPastFailures(t *testing.T) {
	root := t.TempDir()
	writeSong(t, root, "good", "notes.cabc.abc", "K:C\nS R G M |")
	// A song whose input vanishes between discovery and read.
	bad := writeSong(t, root, "bad", "notes.cabc.abc", "K:C\nS |")

	orch := NewOrchestrator(io.Discard, false)

	if err := os.Remove(bad); err != nil {
		t.Fatal(err)
	}

	batch, err := orch.ExecuteAll(context.Background(), root)
	if err != nil {
		t.Fatalf("ExecuteAll: %v", err)
	}
	if !batch.Failed() {
		t.Error("expected batch to record a failure")
	}
	if len(batch.Results) != 1 || batch.Results[0].Song != "good" {
		t.Errorf("good song not processed: %+v", batch.Results)
	}
	if len(batch.Errors) != 1 {
		t.Errorf("got %d errors, want 1", len(batch.Errors))
	}
}

func TestExecuteAllCancelled(t *testing.T) {
	root := t.TempDir()
	writeSong(t, root, "scale", "notes.cabc.abc", "K:C\nS R |")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := NewOrchestrator(io.Discard, false)
	if _, err := orch.ExecuteAll(ctx, root); err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestWriteFileAtomicNoPartials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.abc")
	if err := writeFileAtomic(path, "X:1\n"); err != nil {
		t.Fatalf("writeFileAtomic: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.abc" {
		t.Errorf("unexpected directory contents: %v", entries)
	}
}
