package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikhilmaddirala/carnatic-abc/internal/notation"
	"github.com/nikhilmaddirala/carnatic-abc/internal/pipeline"
	"github.com/nikhilmaddirala/carnatic-abc/internal/server"
	"github.com/nikhilmaddirala/carnatic-abc/internal/songs"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cabc",
	Short: "Convert Carnatic ABC (CABC) notation to standard ABC",
	Long: `cabc converts the Carnatic notation dialect CABC into standard
Western ABC notation and derives swara lyric lines from the result.

Pipeline: CABC text → swara-to-note transcoding → ABC text → generated
"w:" swara lyric lines.`,
	Version: version,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a single CABC file",
	Long: `Convert one CABC input file and write its derived ABC outputs.

A notes input yields notes.abc and notes-swaras.abc. A notes-lyrics
input additionally yields notes-lyrics.abc and notes-swaras-lyrics.abc.

Examples:
  cabc convert -i songs/sri-govinda/inputs/notes-lyrics.cabc.abc
  cabc convert -i songs/varaveena/inputs/notes.cabc.abc -o test_outputs/`,
	RunE: runConvert,
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every song in the songs directory",
	Long: `Discover and convert all CABC inputs under the songs directory.
Each song directory is expected to hold an inputs/ subdirectory with
notes.cabc.abc, notes-lyrics.cabc.abc or notes-lyrics-taala.cabc.abc.
A failing song is reported and the batch continues.

Example:
  cabc batch --songs songs`,
	RunE: runBatch,
}

var swarasCmd = &cobra.Command{
	Use:   "swaras",
	Short: "Add swara lyric lines to an ABC file",
	Long: `Read standard ABC notation and print it with a generated "w:"
swara lyric line after every music line.

Examples:
  cabc swaras -i songs/varaveena/outputs/notes.abc
  cabc swaras -i notes.abc -o notes-swaras.abc`,
	RunE: runSwaras,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long: `Start the web interface for pasting and converting CABC
notation in the browser.

Example:
  cabc serve --port 8080`,
	RunE: runServe,
}

var (
	// convert flags
	inputPath string
	outputDir string
	inputType string
	verbose   bool

	// batch flags
	songsDir string

	// swaras flags
	swarasInput  string
	swarasOutput string

	// serve flags
	port int
)

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(swarasCmd)
	rootCmd.AddCommand(serveCmd)

	convertCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input CABC file (*.cabc.abc)")
	convertCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: outputs/ next to inputs/)")
	convertCmd.Flags().StringVarP(&inputType, "type", "t", "", "Input type (notes or notes-lyrics, default: from file name)")
	convertCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	convertCmd.MarkFlagRequired("input")

	batchCmd.Flags().StringVar(&songsDir, "songs", "songs", "Songs directory to scan")
	batchCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	swarasCmd.Flags().StringVarP(&swarasInput, "input", "i", "", "Input ABC file")
	swarasCmd.Flags().StringVarP(&swarasOutput, "output", "o", "", "Output file (default: stdout)")
	swarasCmd.MarkFlagRequired("input")

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
}

// signalContext returns a context cancelled on interrupt
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, stopping...")
		cancel()
	}()

	return ctx, cancel
}

func runConvert(cmd *cobra.Command, args []string) error {
	if inputType != "" && inputType != string(songs.TypeNotes) && inputType != string(songs.TypeNotesLyrics) {
		return fmt.Errorf("invalid type: %s (must be notes or notes-lyrics)", inputType)
	}

	ctx, cancel := signalContext()
	defer cancel()

	orch := pipeline.NewOrchestrator(os.Stdout, verbose)
	result, err := orch.Execute(ctx, pipeline.Config{
		InputPath: inputPath,
		OutputDir: outputDir,
		Type:      songs.InputType(inputType),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	fmt.Printf("✓ Generated %d output(s) in %s\n", len(result.Outputs), result.OutputDir)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	orch := pipeline.NewOrchestrator(os.Stdout, verbose)
	batch, err := orch.ExecuteAll(ctx, songsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	for _, res := range batch.Results {
		fmt.Printf("✓ %s: %d output(s) in %s\n", res.Song, len(res.Outputs), res.OutputDir)
	}
	for _, e := range batch.Errors {
		fmt.Fprintf(os.Stderr, "✗ %v\n", e)
	}

	fmt.Printf("Processed %d song file(s), %d failed\n", len(batch.Results)+len(batch.Errors), len(batch.Errors))
	if batch.Failed() {
		return fmt.Errorf("%d file(s) failed", len(batch.Errors))
	}
	return nil
}

func runSwaras(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(swarasInput)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	out := notation.AddSwaraLyrics(string(data))

	if swarasOutput == "" {
		fmt.Println(out)
		return nil
	}
	if err := os.WriteFile(swarasOutput, []byte(out), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Wrote %s\n", swarasOutput)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.New(server.Config{Port: port})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	return srv.Run()
}
