package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"insdiff/internal/disasm"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file.jsonl]",
	Short: "Render a JSON lines diff as it is written",
	Long: `Follow a JSON lines file, one instruction diff per line, and render each
instruction as soon as it is appended. Rotated or truncated files are reopened.`,
	Example: `
# Follow the output of a diff engine
insdiff watch -a ppc /tmp/main.jsonl

# Render what is there and exit
insdiff watch --no-follow /tmp/main.jsonl
  `,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ResolveConfig(cmd)
		if err != nil {
			return err
		}
		noFollow, _ := cmd.Flags().GetBool("no-follow")

		t, err := tail.TailFile(args[0], tail.Config{
			Follow:    !noFollow,
			ReOpen:    !noFollow,
			MustExist: true,
			Logger:    tail.DiscardingLogger,
		})
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer t.Cleanup()

		done := cmd.Context().Done()
		go func() {
			<-done
			_ = t.Stop()
		}()

		return watchLines(cmd.OutOrStdout(), t.Lines, cfg)
	},
}

func init() {
	addRenderFlags(watchCmd)
	watchCmd.Flags().Bool("no-follow", false, "Stop at the end of the file")
	rootCmd.AddCommand(watchCmd)
}

// watchLines renders each line received until lines is closed.
func watchLines(w io.Writer, lines <-chan *tail.Line, cfg Config) error {
	e, err := newEmitter(cfg, nil)
	if err != nil {
		return err
	}
	r, err := newRenderer(cfg, w)
	if err != nil {
		return err
	}
	var base uint32
	if cfg.BaseAddress != nil {
		base = *cfg.BaseAddress
	}

	index := 0
	for line := range lines {
		if line.Err != nil {
			return line.Err
		}
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		d, err := disasm.DecodeLine([]byte(text))
		if err != nil {
			slog.Warn("Skipping malformed line", "line", line.Num, "error", err)
			continue
		}
		if err := renderOne(r, e, d, base, index, cfg.Strict); err != nil {
			return err
		}
		// chroma buffers until flushed
		if err := r.Flush(); err != nil {
			return err
		}
		index++
	}
	return r.Flush()
}
