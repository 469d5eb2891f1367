package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

// Config represents configuration for the insdiff tool
type Config struct {
	Arch        string  `json:"arch,omitempty" jsonschema:"title=Architecture,description=Relocation table to use (ppc or mips); all tables when empty,enum=all,enum=ppc,enum=mips"`
	BaseAddress *uint32 `json:"baseAddress,omitempty" jsonschema:"title=Base Address,description=Address subtracted from instruction addresses; overrides the document"`
	Format      string  `json:"format,omitempty" jsonschema:"title=Format,description=Output format,enum=plain,enum=ansi,enum=chroma,enum=html,enum=json"`
	Formatter   string  `json:"formatter,omitempty" jsonschema:"title=Chroma Formatter,description=Chroma formatter used by the chroma format"`
	Style       string  `json:"style,omitempty" jsonschema:"title=Chroma Style,description=Chroma style used by the chroma and html formats"`
	Palette     string  `json:"palette,omitempty" jsonschema:"title=Palette,description=Color palette used by the ansi format"`
	NoColor     bool    `json:"noColor,omitempty" jsonschema:"title=No Color,description=Disable colored output"`
	Strict      bool    `json:"strict,omitempty" jsonschema:"title=Strict,description=Fail on the first instruction that cannot be rendered"`
	Debug       bool    `json:"debug,omitempty" jsonschema:"title=Debug,description=Enable debug logging"`
}

// LoadConfig reads a JSON configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseAddress parses a decimal or 0x-prefixed 32-bit address.
func ParseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint32(v), nil
}

// ResolveConfig merges the config file, environment and flags. Flags win.
func ResolveConfig(cmd *cobra.Command) (Config, error) {
	var cfg Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if os.Getenv("INSDIFF_NO_COLOR") != "" || os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	flags := cmd.Flags()
	if flags.Changed("arch") {
		cfg.Arch, _ = flags.GetString("arch")
	}
	if flags.Changed("base") {
		s, _ := flags.GetString("base")
		base, err := ParseAddress(s)
		if err != nil {
			return cfg, err
		}
		cfg.BaseAddress = &base
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("formatter") {
		cfg.Formatter, _ = flags.GetString("formatter")
	}
	if flags.Changed("style") {
		cfg.Style, _ = flags.GetString("style")
	}
	if flags.Changed("palette") {
		cfg.Palette, _ = flags.GetString("palette")
	}
	if flags.Changed("no-color") {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	return cfg, nil
}

// OutputFormat returns the configured format, choosing ansi for terminals
// and plain text otherwise.
func (c Config) OutputFormat() string {
	if c.Format != "" {
		if c.NoColor && (c.Format == "ansi" || c.Format == "chroma") {
			return "plain"
		}
		return c.Format
	}
	if c.NoColor || !term.IsTerminal(os.Stdout.Fd()) {
		return "plain"
	}
	return "ansi"
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("arch", "a", "", "Relocation table (ppc, mips); defaults to the document's or all")
	cmd.Flags().StringP("base", "b", "", "Base address subtracted from instruction addresses (e.g. 0x80003000)")
	cmd.Flags().StringP("format", "f", "", "Output format: plain, ansi, chroma, html, json (default: ansi on a terminal)")
	cmd.Flags().String("formatter", "", "Chroma formatter for --format chroma (terminal, terminal256, terminal16m)")
	cmd.Flags().String("style", "", "Chroma style for --format chroma/html (default: disasm-dark)")
	cmd.Flags().String("palette", "", "Palette for --format ansi (charm, vscode)")
	cmd.Flags().Bool("no-color", false, "Disable colors")
	cmd.Flags().Bool("strict", false, "Fail on the first instruction that cannot be rendered")
}
