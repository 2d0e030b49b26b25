package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/touring/pkg/board"
	"github.com/matzehuels/touring/pkg/buildinfo"
	"github.com/matzehuels/touring/pkg/errors"
	"github.com/matzehuels/touring/pkg/io"
	"github.com/matzehuels/touring/pkg/render/sink"
	"github.com/matzehuels/touring/pkg/render/styles"
)

const (
	// playWidth and playHeight are the canvas size in SVG units.
	playWidth  = 800.0
	playHeight = 600.0

	// playChrome is the number of screen lines around the canvas: header,
	// two border lines, four status lines, help and message.
	playChrome = 9

	// canvasTop is the screen row of the first canvas row (header + border).
	canvasTop = 2
)

var (
	playBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	playCursorStyle = lipgloss.NewStyle().Reverse(true)
)

// playCommand creates the interactive canvas command.
func (c *CLI) playCommand() *cobra.Command {
	var (
		mode          string
		width, height float64
		outDir        string
	)

	cmd := &cobra.Command{
		Use:   "play [points-file]",
		Short: "Place points interactively and watch the tours grow",
		Long: `Play opens a canvas in the terminal. Every point you drop is inserted into
the tours of the current mode and the total distances update as you go.

Keys:
  arrows, hjkl   move the cursor
  space, enter   drop a point (a left click drops one too)
  m              cycle mode: add, closest, smallest, all
  r              remove all points
  s              save an SVG snapshot
  e              export the points as JSON
  q              quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, w, h, err := c.playBoard(cmd, mode, width, height)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				points, err := io.ReadFile(args[0])
				if err != nil {
					return err
				}
				for _, p := range points {
					b.Add(p)
				}
				c.Logger.Debug("preloaded points", "file", args[0], "points", len(points))
			}

			model := newPlayModel(b, w, h, outDir)
			final, err := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			).Run()
			if err != nil {
				return err
			}

			pm := final.(playModel)
			for _, line := range statusLines(pm.board.Status(), summaryStyles(pm.board)) {
				fmt.Println(line)
			}
			if len(pm.saved) > 0 {
				printSuccess("Saved %d file(s)", len(pm.saved))
				for _, path := range pm.saved {
					printFile(path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "all", "insert mode: add, closest, smallest, all")
	cmd.Flags().Float64Var(&width, "width", playWidth, "canvas width in SVG units")
	cmd.Flags().Float64Var(&height, "height", playHeight, "canvas height in SVG units")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory for snapshots and exports")

	return cmd
}

// playBoard builds the board from the config and the flags.
func (c *CLI) playBoard(cmd *cobra.Command, mode string, width, height float64) (*board.Board, float64, float64, error) {
	cfg := c.config
	flags := cmd.Flags()

	name := cfg.Mode
	if flags.Changed("mode") || name == "" {
		name = mode
	}
	m, err := board.ParseMode(name)
	if err != nil {
		return nil, 0, 0, errors.Wrap(errors.ErrCodeInvalidMode, err, "mode")
	}

	w, h := width, height
	if !flags.Changed("width") && !flags.Changed("height") && cfg.Width > 0 && cfg.Height > 0 {
		w, h = cfg.Width, cfg.Height
	}
	if w == 0 || h == 0 {
		return nil, 0, 0, errors.New(errors.ErrCodeInvalidSize, "canvas size must be positive, got %vx%v", w, h)
	}
	if err := errors.ValidateCanvasSize(w, h); err != nil {
		return nil, 0, 0, err
	}

	opts := []board.Option{board.WithMode(m)}
	overrides, err := cfg.StyleOverrides()
	if err != nil {
		return nil, 0, 0, err
	}
	if len(overrides) > 0 {
		opts = append(opts, board.WithStyles(overrides))
	}
	return board.New(opts...), w, h, nil
}

// =============================================================================
// playModel - Interactive canvas
// =============================================================================

// savedMsg reports a finished snapshot or export.
type savedMsg struct {
	path string
	err  error
}

// playModel is the bubbletea model of the canvas. The board is shared by
// model copies; bubbletea serializes Update calls, and commands only ever
// see bytes or point copies taken inside Update.
type playModel struct {
	board            *board.Board
	canvasW, canvasH float64
	cols, rows       int
	cursorCol        int
	cursorRow        int
	outDir           string
	message          string
	saved            []string
}

func newPlayModel(b *board.Board, width, height float64, outDir string) playModel {
	return playModel{
		board:     b,
		canvasW:   width,
		canvasH:   height,
		cols:      60,
		rows:      20,
		cursorCol: 30,
		cursorRow: 10,
		outDir:    outDir,
	}
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(0, -1)
		case "down", "j":
			m.moveCursor(0, 1)
		case "left", "h":
			m.moveCursor(-1, 0)
		case "right", "l":
			m.moveCursor(1, 0)
		case " ", "enter":
			m.drop()
		case "m":
			next := m.board.Mode().Next()
			_ = m.board.SetMode(next) // Next always yields a valid mode
			m.message = "mode: " + next.String()
		case "r":
			m.board.Reset()
			m.message = "cleared"
		case "s":
			return m, m.snapshot()
		case "e":
			return m, m.export()
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		col, row := msg.X-1, msg.Y-canvasTop
		if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
			return m, nil
		}
		m.cursorCol, m.cursorRow = col, row
		m.drop()

	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-2, 10)
		m.rows = max(msg.Height-playChrome, 5)
		m.moveCursor(0, 0)

	case savedMsg:
		if msg.err != nil {
			m.message = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.saved = append(m.saved, msg.path)
		m.message = "saved " + msg.path
	}
	return m, nil
}

func (m *playModel) moveCursor(dc, dr int) {
	m.cursorCol = clamp(m.cursorCol+dc, 0, m.cols-1)
	m.cursorRow = clamp(m.cursorRow+dr, 0, m.rows-1)
}

// drop adds the point under the cursor.
func (m *playModel) drop() {
	p := m.grid().toPoint(m.cursorCol, m.cursorRow)
	dup := len(m.board.Nearby(p, 0)) > 0
	m.board.Add(p)
	m.message = fmt.Sprintf("added (%.0f, %.0f)", p.X(), p.Y())
	if dup {
		m.message += " (duplicate)"
	}
}

// snapshot renders the SVG now and writes it in the background.
func (m playModel) snapshot() tea.Cmd {
	svg := sink.RenderSVG(m.board, sink.WithSize(m.canvasW, m.canvasH), sink.WithStatus(m.board.Status()))
	path := filepath.Join(m.outDir, "touring-"+shortID()+".svg")
	return func() tea.Msg {
		return savedMsg{path: path, err: writeArtifact(path, svg)}
	}
}

// export writes the added points as JSON in the background.
func (m playModel) export() tea.Cmd {
	points := m.board.History()
	path := filepath.Join(m.outDir, "touring-"+shortID()+".json")
	return func() tea.Msg {
		if err := os.MkdirAll(m.outDir, 0o755); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{path: path, err: io.ExportJSON(points, path)}
	}
}

func (m playModel) grid() *grid {
	return newGrid(m.cols, m.rows, m.canvasW, m.canvasH)
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(buildinfo.Short()))
	b.WriteString(StyleDim.Render(" · mode "))
	b.WriteString(StyleHighlight.Render(m.board.Mode().String()))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" · %d points", m.board.Len())))
	b.WriteString("\n")

	g := m.grid()
	g.draw(m.board)
	if r := g.at(m.cursorCol, m.cursorRow); r == 0 {
		g.set(m.cursorCol, m.cursorRow, runeCursor, playCursorStyle)
	} else {
		g.set(m.cursorCol, m.cursorRow, r, playCursorStyle)
	}
	b.WriteString(playBorderStyle.Render(g.String()))
	b.WriteString("\n")

	for _, line := range statusLines(m.board.Status(), summaryStyles(m.board)) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render("arrows/hjkl move · space drop · m mode · r reset · s save · e export · q quit"))
	b.WriteString("\n")
	b.WriteString(m.message)

	return b.String()
}

// summaryStyles returns the tour styles in status line order.
func summaryStyles(b *board.Board) []styles.Style {
	sums := b.Summaries()
	out := make([]styles.Style, len(sums))
	for i, s := range sums {
		out[i] = s.Style
	}
	return out
}

// shortID returns the first block of a random UUID.
func shortID() string {
	id := uuid.NewString()
	return id[:strings.IndexByte(id, '-')]
}
