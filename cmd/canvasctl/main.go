// Command canvasctl ingests images through pipeline recipes and renders a
// demo scene with the canvas 2D context.
//
// Usage:
//
//	canvasctl ingest -recipe thumb.yaml [-in photo.jpg] [-out thumb.png]
//	canvasctl demo [-width 800] [-height 600] [-density 1] [-output demo.png]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/canvas"
)

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("canvasctl: %v", err)
	}
}

func run(args []string, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return fmt.Errorf("missing command")
	}
	switch args[0] {
	case "ingest":
		return ingestCmd(args[1:], stderr)
	case "demo":
		return demoCmd(args[1:], stderr)
	case "help", "-h", "-help", "--help":
		usage(stderr)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: canvasctl <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  ingest   decode an image, run a YAML or TOML recipe, write the result")
	fmt.Fprintln(w, "  demo     render the demo scene to an image file")
}

// verbose routes library logs to stderr.
func verbose(on bool, stderr io.Writer) {
	if !on {
		return
	}
	canvas.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}
