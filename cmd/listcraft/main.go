// Package main is the command-line front end for the listcraft engine:
// it reads a markdown document, applies list operations, and writes the
// reflattened result.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dshills/listcraft/internal/config"
	"github.com/dshills/listcraft/internal/doctree"
	"github.com/dshills/listcraft/internal/engine"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	output     string
	style      string
	toggle     bool
	strip      bool
	renumber   bool
	state      bool
	indent     int
	outdent    int
	logLevel   string
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if err := setupLogging(opts.logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}

	if len(opts.files) != 1 {
		fmt.Fprintf(os.Stderr, "Error: exactly one input file required\n")
		flag.Usage()
		return 1
	}

	src, err := os.ReadFile(opts.files[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	e := engine.New(engine.WithConfig(cfg))
	defer e.Close()

	if err := e.LoadMarkdown(src); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := applyOps(e, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.state {
		blob, err := e.SerializeListState()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(blob)
		return 0
	}

	out := e.RenderMarkdown()
	if opts.output == "" || opts.output == "-" {
		fmt.Print(out)
		return 0
	}
	if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// applyOps runs the requested operations against the loaded document.
func applyOps(e *engine.Engine, opts options) error {
	if opts.toggle || opts.strip {
		ids := allItemIDs(e.Document())
		if len(ids) == 0 {
			return fmt.Errorf("document has no list items")
		}
		if opts.strip {
			if err := e.RemoveListFormatting(ids); err != nil {
				return err
			}
		} else {
			style, err := doctree.ParseMarkerStyle(opts.style)
			if err != nil {
				return err
			}
			if err := e.ToggleList(ids, style); err != nil {
				return err
			}
		}
	}

	if opts.indent > 0 {
		if err := moveItem(e, opts.indent, e.IndentSelection); err != nil {
			return err
		}
	}
	if opts.outdent > 0 {
		if err := moveItem(e, opts.outdent, e.OutdentSelection); err != nil {
			return err
		}
	}

	if opts.renumber {
		e.Renumber()
	} else {
		e.FlushRenumber()
	}
	return nil
}

// moveItem applies an indent/outdent operation to the n-th top-level
// list item (1-based).
func moveItem(e *engine.Engine, n int, op func(engine.Position) (engine.Position, error)) error {
	var items []*doctree.ListItem
	for _, b := range e.Document().Blocks {
		if l, ok := b.(*doctree.List); ok {
			items = append(items, l.Items...)
		}
	}
	if n > len(items) {
		return fmt.Errorf("item %d out of range (%d items)", n, len(items))
	}
	p := items[n-1].Paragraph()
	if p == nil {
		return fmt.Errorf("item %d has no text", n)
	}
	_, err := op(engine.Position{BlockID: p.ID, Offset: 0})
	return err
}

// allItemIDs collects the paragraph IDs of every top-level list item,
// which is how selections address items.
func allItemIDs(doc *doctree.Document) []string {
	var ids []string
	for _, b := range doc.Blocks {
		l, ok := b.(*doctree.List)
		if !ok {
			continue
		}
		for _, it := range l.Items {
			if p := it.Paragraph(); p != nil {
				ids = append(ids, p.ID)
			}
		}
	}
	return ids
}

func setupLogging(level string) error {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.output, "output", "", "Output file (default stdout)")
	flag.StringVar(&opts.output, "o", "", "Output file (shorthand)")
	flag.StringVar(&opts.style, "style", "decimal", "Marker style for -toggle: "+strings.Join(styleNames(), ", "))
	flag.BoolVar(&opts.toggle, "toggle", false, "Toggle list formatting over every top-level item")
	flag.BoolVar(&opts.strip, "strip", false, "Remove list formatting from every top-level item")
	flag.BoolVar(&opts.renumber, "renumber", false, "Recompute all list markers immediately")
	flag.IntVar(&opts.indent, "indent", 0, "Indent the Nth top-level list item (1-based)")
	flag.IntVar(&opts.outdent, "outdent", 0, "Outdent the Nth top-level list item (1-based)")
	flag.BoolVar(&opts.state, "state", false, "Print the serialized list state instead of markdown")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Listcraft - list structure editing engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: listcraft [options] file.md\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  listcraft notes.md                      Normalize a document\n")
		fmt.Fprintf(os.Stderr, "  listcraft -toggle -style decimal notes.md  Convert bullets to numbers\n")
		fmt.Fprintf(os.Stderr, "  listcraft -strip notes.md               Flatten lists to paragraphs\n")
		fmt.Fprintf(os.Stderr, "  listcraft -state notes.md               Dump serialized list state\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Listcraft %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	opts.files = flag.Args()
	return opts
}

func styleNames() []string {
	styles := []doctree.MarkerStyle{
		doctree.Disc, doctree.Circle, doctree.Square,
		doctree.Decimal, doctree.LowerAlpha, doctree.UpperAlpha,
		doctree.LowerRoman, doctree.UpperRoman, doctree.Outline,
	}
	out := make([]string, len(styles))
	for i, s := range styles {
		out[i] = s.String()
	}
	return out
}
