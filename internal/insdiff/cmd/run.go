package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"insdiff/internal/disasm"
	"insdiff/internal/display"
	"insdiff/internal/ui/render"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file] [index...]",
	Short: "Print the display tokens of instructions",
	Long: `Print the raw display token stream of each instruction instead of
rendering it. Useful when writing a new renderer.`,
	Example: `
# Dump the tokens of every instruction
insdiff tokens main.json

# Dump the tokens of instructions 3 and 4
insdiff tokens main.json 3 4
  `,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ResolveConfig(cmd)
		if err != nil {
			return err
		}
		doc, err := disasm.Load(args[0])
		if err != nil {
			return err
		}

		indexes, err := parseIndexes(args[1:], len(doc.Instructions))
		if err != nil {
			return err
		}
		slog.Debug("Dumping tokens", "file", args[0], "instructions", len(indexes))

		e, err := newEmitter(cfg, doc)
		if err != nil {
			return err
		}
		base := doc.BaseAddress
		if cfg.BaseAddress != nil {
			base = *cfg.BaseAddress
		}
		return dumpTokens(cmd.OutOrStdout(), e, doc, base, indexes)
	},
}

func init() {
	tokensCmd.Flags().StringP("arch", "a", "", "Relocation table (ppc, mips)")
	tokensCmd.Flags().StringP("base", "b", "", "Base address subtracted from instruction addresses")
}

func parseIndexes(args []string, n int) ([]int, error) {
	if len(args) == 0 {
		indexes := make([]int, n)
		for i := range indexes {
			indexes[i] = i
		}
		return indexes, nil
	}
	indexes := make([]int, 0, len(args))
	for _, arg := range args {
		i, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid instruction index %q: %w", arg, err)
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("instruction index %d out of range (document has %d)", i, n)
		}
		indexes = append(indexes, i)
	}
	return indexes, nil
}

func dumpTokens(w io.Writer, e *display.Emitter, doc *disasm.Document, base uint32, indexes []int) error {
	for _, i := range indexes {
		fmt.Fprintf(w, "# %d\n", i)
		d := &doc.Instructions[i]
		for t, err := range e.Tokens(d, base) {
			if err != nil {
				fmt.Fprintf(w, "  error %v\n", err)
				break
			}
			tok := render.EncodeToken(t)
			fmt.Fprintf(w, "  %-13s %q\n", tok.Type, tok.Rendered)
		}
	}
	return nil
}
