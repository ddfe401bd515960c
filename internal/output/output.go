package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lipglosstable "github.com/charmbracelet/lipgloss/table"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/term"
)

func init() {
	// Disable mouse support to allow text selection in terminal.
	_ = os.Setenv("BUBBLETEA_DISABLE_MOUSE", "1")
}

const outputTimeFormat = "2006-01-02 15:04:05.000 MST"

// Format selects how rows are printed.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Row is a single resolved expression.
type Row struct {
	Name       string
	Expression string
	Anchor     string
	Adjustment string
	Time       time.Time
}

type jsonRow struct {
	Name       string    `json:"name,omitempty"`
	Expression string    `json:"expression"`
	Anchor     string    `json:"anchor"`
	Adjustment string    `json:"adjustment,omitempty"`
	Time       time.Time `json:"time"`
}

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

type tableModel struct {
	table    table.Model
	viewport viewport.Model
	width    int
	height   int
}

func (m tableModel) Init() tea.Cmd { return nil }

func (m tableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.viewport.ScrollLeft(max(m.viewport.Width/4, 4))
		case "right", "l":
			m.viewport.ScrollRight(max(m.viewport.Width/4, 4))
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reflow()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.refreshContent()

	return m, cmd
}

func (m *tableModel) reflow() {
	m.table.SetHeight(calcTableHeight(m.height))
	m.viewport.Width = m.width
	m.viewport.Height = m.height
	m.refreshContent()
}

func (m *tableModel) refreshContent() {
	content := baseStyle.Render(m.table.View()) +
		"\n  ←/→ to scroll, q to quit\n"
	m.viewport.SetContent(content)
}

func (m tableModel) View() string {
	return m.viewport.View()
}

func hasNames(rows []Row) bool {
	return slices.ContainsFunc(rows, func(r Row) bool { return r.Name != "" })
}

func rowCells(r Row, withName bool) []string {
	cells := []string{r.Expression, r.Anchor, r.Adjustment, r.Time.Format(outputTimeFormat)}
	if withName {
		cells = append([]string{r.Name}, cells...)
	}
	return cells
}

func newTableModel(rows []Row, termWidth int, termHeight int) tableModel {
	withName := hasNames(rows)

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, rowCells(r, withName))
	}

	t := table.New(
		table.WithColumns(buildColumns(termWidth, withName)),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(calcTableHeight(termHeight)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	vp := viewport.New(termWidth, termHeight)
	vp.SetHorizontalStep(8)

	m := tableModel{
		table:    t,
		viewport: vp,
		width:    termWidth,
		height:   termHeight,
	}
	m.refreshContent()

	return m
}

// PrintRows writes rows to stdout. Tables are interactive on a terminal and
// fall back to markdown otherwise.
func PrintRows(rows []Row, format Format) error {
	if format == FormatJSON {
		return printJSON(os.Stdout, rows)
	}

	if len(rows) == 0 {
		zlog.Info().Msg("No expressions resolved.")
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err := fmt.Fprintln(os.Stdout, renderMarkdown(os.Stdout, rows))
		return err
	}

	termWidth := 140
	termHeight := 40
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		termWidth = w
		termHeight = h
	}

	m := newTableModel(rows, termWidth, termHeight)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running table: %w", err)
	}

	return nil
}

func printJSON(w io.Writer, rows []Row) error {
	out := make([]jsonRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, jsonRow(r))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}

	return nil
}

func renderMarkdown(w io.Writer, rows []Row) string {
	withName := hasNames(rows)

	headers := []string{"Expression", "Anchor", "Adjustment", "Time"}
	if withName {
		headers = append([]string{"Name"}, headers...)
	}

	re := lipgloss.NewRenderer(w)
	cellStyle := re.NewStyle().Padding(0, 1)
	t := lipglosstable.New().
		Headers(headers...).
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		})

	for _, r := range rows {
		t.Row(rowCells(r, withName)...)
	}

	return t.Render()
}

func calcTableHeight(termHeight int) int {
	available := termHeight - 1 - baseStyle.GetVerticalFrameSize()
	if available < 5 {
		return 5
	}
	return available
}

const (
	colWidthName       = 20
	colWidthAnchor     = 16
	colWidthAdjustment = 24
	colWidthTime       = 29
)

func buildColumns(termWidth int, withName bool) []table.Column {
	var (
		fixedWidth = colWidthAnchor + colWidthAdjustment + colWidthTime
		numCols    = 4
	)

	if withName {
		fixedWidth += colWidthName
		numCols = 5
	}

	paddingWidth := numCols * 2
	exprWidth := termWidth - baseStyle.GetHorizontalFrameSize() - paddingWidth - fixedWidth
	exprWidth = max(exprWidth, 20)

	cols := []table.Column{
		{Title: "Expression", Width: exprWidth},
		{Title: "Anchor", Width: colWidthAnchor},
		{Title: "Adjustment", Width: colWidthAdjustment},
		{Title: "Time", Width: colWidthTime},
	}

	if withName {
		cols = append([]table.Column{{Title: "Name", Width: colWidthName}}, cols...)
	}

	return cols
}
