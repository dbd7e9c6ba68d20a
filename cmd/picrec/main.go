// Command picrec replays a YAML scene script against a recorder and
// writes out the resulting binary op stream.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/gogpu/picrec/record"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		out                  string
		disableOptimizations bool
		usePathBoundsForClip bool
		dump                 bool
		verbose              bool
		showHelp             bool
	)

	pflag.StringVarP(&out, "out", "o", "", "path to write the recorded op stream (default: stdout)")
	pflag.BoolVar(&disableOptimizations, "disable-optimizations", false, "keep every save/restore pair, skip peephole collapsing")
	pflag.BoolVar(&usePathBoundsForClip, "use-path-bounds-for-clip", false, "conservatively narrow the shadow clip on ClipPath using the path's bounds")
	pflag.BoolVarP(&dump, "dump", "d", false, "print a human-readable summary instead of writing the op stream")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging from the recorder")
	pflag.BoolVarP(&showHelp, "help", "h", false, "show this help message")
	pflag.Parse()

	if showHelp {
		printHelp()
		return 0
	}

	if verbose {
		record.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one scene script path is required")
		printHelp()
		return 1
	}

	s, err := loadScene(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	r := record.NewRecorder(record.Options{
		DisableRecordOptimizations: disableOptimizations,
		UsePathBoundsForClip:       usePathBoundsForClip,
	})

	r.BeginRecording()
	if err := replay(r, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	r.EndRecording()

	if dump {
		fmt.Println(r.String())
		return 0
	}

	if out == "" {
		if _, err := os.Stdout.Write(r.Bytes()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing stream to stdout: %v\n", err)
			return 1
		}
		return 0
	}

	if err := os.WriteFile(out, r.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
		return 1
	}
	return 0
}

func printHelp() {
	fmt.Fprintln(os.Stderr, "Usage: picrec [flags] <scene.yaml>")
	fmt.Fprintln(os.Stderr, "\nReplays a YAML scene script against a recorder and writes the")
	fmt.Fprintln(os.Stderr, "resulting binary op stream to --out (or stdout).")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	pflag.PrintDefaults()
}
