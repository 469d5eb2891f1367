package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"insdiff/internal/arch"
	"insdiff/internal/disasm"
	"insdiff/internal/display"
	"insdiff/internal/insdiff/log"
	"insdiff/internal/insdiff/styles"
	"insdiff/internal/ui/render"
)

var errNoInput = errors.New("no input: pass a file or pipe a document on stdin")

func init() {
	rootCmd.PersistentFlags().String("config", "", "JSON configuration file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().Bool("jsonl", false, "Treat stdin as JSON lines, one instruction per line")

	addRenderFlags(rootCmd)

	rootCmd.AddCommand(tokensCmd)
}

var rootCmd = &cobra.Command{
	Use:   "insdiff [file]",
	Short: "Render instruction-level diffs",
	Long: `Insdiff renders instruction diffs produced by a diff engine as text.
Each instruction is turned into display tokens which are then drawn as plain
text, ANSI colors, chroma-highlighted output, HTML or JSON.`,
	Example: `
# Render a diff document
insdiff main.json

# Render MIPS relocations relative to a base address
insdiff -a mips -b 0x80001000 func.json

# Render JSON lines from another tool
objdump-diff | insdiff --jsonl -f html > diff.html
  `,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		log.Setup(debug)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ResolveConfig(cmd)
		if err != nil {
			return err
		}

		lines, _ := cmd.Flags().GetBool("jsonl")
		doc, err := loadInput(args, cmd.InOrStdin(), lines)
		if err != nil {
			return err
		}

		slog.Debug("Loaded document", "symbol", doc.Symbol, "arch", doc.Arch, "instructions", len(doc.Instructions))
		return RenderDocument(cmd.OutOrStdout(), doc, cfg)
	},
}

// loadInput reads the document named by args, or stdin when no file (or
// "-") is given and stdin is not a terminal.
func loadInput(args []string, stdin io.Reader, lines bool) (*disasm.Document, error) {
	if len(args) > 0 && args[0] != "-" {
		return disasm.Load(args[0])
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(f.Fd()) {
		return nil, errNoInput
	}
	if lines {
		return disasm.DecodeLines(stdin)
	}
	return disasm.DecodeDocument(stdin)
}

// newEmitter selects the relocation table: the configured one, else the
// document's, else every table.
func newEmitter(cfg Config, doc *disasm.Document) (*display.Emitter, error) {
	name := cfg.Arch
	if name == "" && doc != nil {
		name = doc.Arch
	}
	tbl, err := arch.Select(name)
	if err != nil {
		return nil, err
	}
	return display.NewEmitter(tbl), nil
}

func newRenderer(cfg Config, w io.Writer) (render.Renderer, error) {
	palette, err := styles.PaletteByName(cfg.Palette)
	if err != nil {
		return nil, err
	}
	return render.New(cfg.OutputFormat(), w, render.Options{
		Palette:   palette,
		Style:     cfg.Style,
		Formatter: cfg.Formatter,
	})
}

// errorLine is the token stream drawn in place of an instruction that
// failed to render.
func errorLine(err error) iter.Seq2[display.DiffText, error] {
	return func(yield func(display.DiffText, error) bool) {
		if !yield(display.Basic{Text: fmt.Sprintf("<error: %v>", err)}, nil) {
			return
		}
		yield(display.Eol{}, nil)
	}
}

// RenderDocument writes every instruction of doc to w. Instructions that
// fail are logged and drawn as an error marker unless cfg.Strict is set.
func RenderDocument(w io.Writer, doc *disasm.Document, cfg Config) error {
	e, err := newEmitter(cfg, doc)
	if err != nil {
		return err
	}
	r, err := newRenderer(cfg, w)
	if err != nil {
		return err
	}

	base := doc.BaseAddress
	if cfg.BaseAddress != nil {
		base = *cfg.BaseAddress
	}

	for i := range doc.Instructions {
		if err := renderOne(r, e, &doc.Instructions[i], base, i, cfg.Strict); err != nil {
			return err
		}
	}
	return r.Flush()
}

func renderOne(r render.Renderer, e *display.Emitter, d *disasm.InsDiff, base uint32, index int, strict bool) error {
	err := r.Line(d, e.Tokens(d, base))
	if err == nil {
		return nil
	}
	if strict || !isFormatError(err) {
		return fmt.Errorf("instruction %d: %w", index, err)
	}
	slog.Warn("Failed to render instruction", "index", index, "error", err)
	return r.Line(d, errorLine(err))
}

// isFormatError reports whether err comes from the instruction itself
// rather than from the output.
func isFormatError(err error) bool {
	return errors.Is(err, display.ErrUnsupportedReloc) || errors.Is(err, display.ErrMissingReloc)
}

func Execute() {
	// Bypass fang's styled help and errors when output is being piped
	if !term.IsTerminal(os.Stdout.Fd()) {
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
