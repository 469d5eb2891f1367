package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"insdiff/internal/arch"
	"insdiff/internal/disasm"
	"insdiff/internal/display"
	"insdiff/internal/insdiff/styles"
	"insdiff/internal/ui/render"
)

var archsCmd = &cobra.Command{
	Use:   "archs [arch...]",
	Short: "List relocation display conventions",
	Long:  "List the relocation kinds of each supported architecture and how they are written.",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(names) == 0 {
			names = arch.Names()
		}
		var tables []*arch.Table
		for _, name := range names {
			tbl, err := arch.Lookup(name)
			if err != nil {
				return err
			}
			tables = append(tables, tbl)
		}

		markdown := archsMarkdown(tables)
		raw, _ := cmd.Flags().GetBool("raw")
		if raw || !term.IsTerminal(os.Stdout.Fd()) {
			fmt.Fprint(cmd.OutOrStdout(), markdown)
			return nil
		}

		width := 80
		if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
			width = w
		}
		renderer, err := styles.GetMarkdownRenderer(width - 2)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		out, err := renderer.Render(markdown)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	archsCmd.Flags().Bool("raw", false, "Print markdown without rendering")
	rootCmd.AddCommand(archsCmd)
}

// relocExample renders a relocation of kind against a sample symbol.
func relocExample(e *display.Emitter, kind disasm.RelocKind) string {
	r := &disasm.Reloc{Kind: kind, Target: disasm.Symbol{Name: "sym"}, Addend: 4}
	var sb strings.Builder
	err := e.EmitReloc(r, func(t display.DiffText) error {
		sb.WriteString(render.Text(t))
		return nil
	})
	if errors.Is(err, display.ErrUnsupportedReloc) {
		return "unsupported"
	}
	if err != nil {
		return err.Error()
	}
	return "`" + sb.String() + "`"
}

func archsMarkdown(tables []*arch.Table) string {
	var sb strings.Builder
	sb.WriteString("# Relocation tables\n")
	for _, tbl := range tables {
		e := display.NewEmitter(tbl)
		fmt.Fprintf(&sb, "\n## %s\n\n", tbl.Name())
		sb.WriteString("| Kind | Style | Example |\n")
		sb.WriteString("|------|-------|---------|\n")
		for _, kind := range tbl.Kinds() {
			f, _ := tbl.Format(kind)
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", kind, f.Style, relocExample(e, kind))
		}
	}
	return sb.String()
}
