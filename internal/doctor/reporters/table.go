// Package reporters renders doctor results for the terminal.
package reporters

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"github.com/smykla-skalski/notify-complete/internal/color"
	"github.com/smykla-skalski/notify-complete/internal/doctor"
)

var categoryNames = map[doctor.Category]string{
	doctor.CategoryConfig:   "Configuration",
	doctor.CategoryNotifier: "Notifications",
	doctor.CategoryPaths:    "Paths",
}

// TableReporter writes results as a table followed by a summary line.
type TableReporter struct {
	out   io.Writer
	theme color.Theme
	width int
}

// NewTableReporter creates a TableReporter. width is the terminal width;
// 0 lets the table size itself.
func NewTableReporter(out io.Writer, theme color.Theme, width int) *TableReporter {
	return &TableReporter{out: out, theme: theme, width: width}
}

// Report implements doctor.Reporter.
func (r *TableReporter) Report(results []doctor.CheckResult, verbose bool) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(r.out, "No checks ran.")

		return err
	}

	if _, err := fmt.Fprintln(r.out, RenderTable(results, verbose, r.theme, r.width)); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(r.out, RenderSummary(results, r.theme)); err != nil {
		return err
	}

	return nil
}

// StatusIcon returns a single-cell icon for a result.
func StatusIcon(result doctor.CheckResult) string {
	switch {
	case result.IsPassed():
		return "✓"
	case result.IsError():
		return "✗"
	case result.IsWarning():
		return "!"
	case result.IsSkipped():
		return "-"
	default:
		return "?"
	}
}

func styledIcon(result doctor.CheckResult, theme color.Theme) string {
	icon := StatusIcon(result)

	switch {
	case result.IsPassed():
		return theme.Pass.Render(icon)
	case result.IsError():
		return theme.Error.Render(icon)
	case result.IsWarning():
		return theme.Warning.Render(icon)
	default:
		return theme.Skip.Render(icon)
	}
}

// RenderTable renders results grouped by category. Category rows span the
// text columns.
func RenderTable(results []doctor.CheckResult, verbose bool, theme color.Theme, width int) string {
	headers := []string{"", "Check", "Message"}
	if verbose {
		headers = append(headers, "Details")
	}

	widths := ColumnWidths(width, results, verbose)

	opts := []tablewriter.Option{
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
		tablewriter.WithConfig(tablewriter.NewConfigBuilder().
			WithTrimSpace(tw.Off).
			Row().Merging().WithMode(tw.MergeHorizontal).Build().
			Formatting().WithAutoWrap(tw.WrapNormal).Build().
			Build().Build()),
	}

	if widths != nil {
		cells := make(tw.Mapper[int, int], len(widths))
		for col, w := range widths {
			cells[col] = w + 2 // left and right padding
		}

		opts = append(opts, tablewriter.WithColumnWidths(cells))
	}

	var buf bytes.Buffer

	t := tablewriter.NewTable(&buf, opts...)
	t.Header(headers)

	for _, group := range groupByCategory(results) {
		title := theme.Header.Render(categoryName(group.category))

		row := []string{""}
		for range len(headers) - 1 {
			row = append(row, title)
		}

		_ = t.Append(row)

		for _, res := range group.results {
			_ = t.Append(resultRow(res, verbose, widths, theme))
		}
	}

	_ = t.Render()

	return dimBorders(strings.TrimRight(buf.String(), "\n"), theme)
}

func resultRow(res doctor.CheckResult, verbose bool, widths map[int]int, theme color.Theme) []string {
	row := []string{
		styledIcon(res, theme),
		theme.Name.Render(res.Name),
		res.Message,
	}

	if verbose {
		row = append(row, strings.Join(res.Details, "; "))
	}

	for i := range row {
		if w, ok := widths[i]; ok {
			row[i] = padToWidth(row[i], w)
		}
	}

	return row
}

// RenderSummary returns the summary line.
func RenderSummary(results []doctor.CheckResult, theme color.Theme) string {
	var failed, warnings, passed, skipped, fixable int

	for _, res := range results {
		switch {
		case res.IsError():
			failed++
		case res.IsWarning():
			warnings++
		case res.IsPassed():
			passed++
		case res.IsSkipped():
			skipped++
		}

		if res.Fixable() {
			fixable++
		}
	}

	parts := []string{
		emphasize(fmt.Sprintf("%d error(s)", failed), failed > 0, theme.Error),
		emphasize(fmt.Sprintf("%d warning(s)", warnings), warnings > 0, theme.Warning),
		theme.Pass.Render(fmt.Sprintf("%d passed", passed)),
	}

	if skipped > 0 {
		parts = append(parts, theme.Skip.Render(fmt.Sprintf("%d skipped", skipped)))
	}

	line := "Summary: " + strings.Join(parts, ", ")

	if fixable > 0 {
		line += fmt.Sprintf("\n%d problem(s) can be fixed with `notify-complete doctor --fix`", fixable)
	}

	return line
}

func emphasize(text string, active bool, style lipgloss.Style) string {
	if !active {
		return text
	}

	return style.Render(text)
}

type categoryGroup struct {
	category doctor.Category
	results  []doctor.CheckResult
}

// groupByCategory keeps the doctor.Categories order and puts failures first
// within a category.
func groupByCategory(results []doctor.CheckResult) []categoryGroup {
	byCategory := make(map[doctor.Category][]doctor.CheckResult)
	for _, res := range results {
		byCategory[res.Category] = append(byCategory[res.Category], res)
	}

	order := doctor.Categories()
	for cat := range byCategory {
		if !slices.Contains(order, cat) {
			order = append(order, cat)
		}
	}

	var groups []categoryGroup

	for _, cat := range order {
		rs, ok := byCategory[cat]
		if !ok {
			continue
		}

		slices.SortStableFunc(rs, func(a, b doctor.CheckResult) int {
			return rank(a) - rank(b)
		})

		groups = append(groups, categoryGroup{category: cat, results: rs})
	}

	return groups
}

func categoryName(cat doctor.Category) string {
	if name, ok := categoryNames[cat]; ok {
		return name
	}

	if cat == "" {
		return "Other"
	}

	s := string(cat)

	return strings.ToUpper(s[:1]) + s[1:]
}

func rank(res doctor.CheckResult) int {
	switch {
	case res.IsError():
		return 0
	case res.IsWarning():
		return 1
	case res.IsPassed():
		return 2
	default:
		return 3
	}
}

// ColumnWidths returns content widths that fit a terminal of width w, or nil
// when w is too small for a table to help.
func ColumnWidths(w int, results []doctor.CheckResult, verbose bool) map[int]int {
	const (
		minTableWidth = 40
		minMessage    = 20
		minName       = 5
		iconWidth     = 1
		perColumn     = 3 // border plus padding
	)

	if w < minTableWidth {
		return nil
	}

	nameWidth := runewidth.StringWidth("Check")
	for _, res := range results {
		nameWidth = max(nameWidth, runewidth.StringWidth(res.Name))
	}

	cols := 3
	if verbose {
		cols = 4
	}

	available := w - cols*perColumn - 1 - iconWidth
	if available < minMessage+minName {
		return nil
	}

	nameWidth = min(nameWidth, available-minMessage)
	rest := available - nameWidth

	widths := map[int]int{0: iconWidth, 1: nameWidth, 2: rest}

	if verbose {
		widths[2] = rest / 2
		widths[3] = rest - rest/2
	}

	return widths
}

// padToWidth right-pads s to w display cells, ignoring ANSI sequences.
func padToWidth(s string, w int) string {
	visible := runewidth.StringWidth(ansi.Strip(s))
	if visible >= w {
		return s
	}

	return s + strings.Repeat(" ", w-visible)
}

func dimBorders(s string, theme color.Theme) string {
	for _, ch := range []string{"╭", "╮", "╰", "╯", "│", "─", "┬", "┴", "├", "┤", "┼"} {
		s = strings.ReplaceAll(s, ch, theme.Muted.Render(ch))
	}

	return s
}

// TerminalWidth returns the width of f, or 0 when f is not a terminal.
func TerminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // fd fits in int
	if err != nil || w <= 0 {
		return 0
	}

	return w
}
