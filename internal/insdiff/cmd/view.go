package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"

	"insdiff/internal/disasm"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Browse a diff document in a scrollable view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ResolveConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Format == "" {
			cfg.Format = "ansi"
		}

		program := tea.NewProgram(
			NewViewModel(args[0], cfg),
			tea.WithAltScreen(),
		)
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	addRenderFlags(viewCmd)
	rootCmd.AddCommand(viewCmd)
}

type viewModel struct {
	viewport viewport.Model
	spinner  spinner.Model
	filepath string
	cfg      Config
	loading  bool
	symbol   string
	lines    int
	err      error
	width    int
	height   int
}

// documentMsg carries the rendered document.
type documentMsg struct {
	symbol  string
	content string
	lines   int
	err     error
}

func renderFileCmd(path string, cfg Config) tea.Cmd {
	return func() tea.Msg {
		doc, err := disasm.Load(path)
		if err != nil {
			return documentMsg{err: err}
		}
		var sb strings.Builder
		if err := RenderDocument(&sb, doc, cfg); err != nil {
			return documentMsg{err: err}
		}
		return documentMsg{
			symbol:  doc.Symbol,
			content: sb.String(),
			lines:   len(doc.Instructions),
		}
	}
}

func NewViewModel(path string, cfg Config) viewModel {
	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	return viewModel{
		viewport: vp,
		spinner:  s,
		filepath: path,
		cfg:      cfg,
		loading:  true,
		width:    80,
		height:   24,
	}
}

func (m viewModel) Init() tea.Cmd {
	return tea.Batch(
		renderFileCmd(m.filepath, m.cfg),
		m.spinner.Tick,
	)
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case documentMsg:
		m.loading = false
		m.err = msg.err
		m.symbol = msg.symbol
		m.lines = msg.lines
		if msg.err != nil {
			m.viewport.SetContent(fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.viewport.SetContent(strings.TrimSuffix(msg.content, "\n"))
		}
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		m.viewport.SetContent(fmt.Sprintf("%s Rendering %s...", m.spinner.View(), m.filepath))
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.SetWidth(msg.Width)
		m.viewport.SetHeight(msg.Height - 1)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewModel) View() string {
	status := fmt.Sprintf(" %s • %d instructions • g/G: top/bottom • Q: quit ", m.title(), m.lines)
	if m.loading {
		status = " loading • Q: quit "
	}

	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1).
		Width(m.width)

	return m.viewport.View() + "\n" + statusStyle.Render(status)
}

func (m viewModel) title() string {
	if m.symbol != "" {
		return m.symbol
	}
	return m.filepath
}
