package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/roach88/timeline/internal/model"
)

// chartWidth is the number of terminal columns spanning the window.
const chartWidth = 70

const (
	barRune   = '█'
	todayRune = '┆'
)

// Terminal approximations of the palette.
var paletteAttrs = map[string]color.Attribute{
	"#FF6B6B": color.FgHiRed,
	"#FF922B": color.FgRed,
	"#FCC419": color.FgHiYellow,
	"#51CF66": color.FgHiGreen,
	"#339AF0": color.FgHiBlue,
	"#845EF7": color.FgHiMagenta,
	"#F06595": color.FgMagenta,
	"#868E96": color.FgWhite,
}

var (
	bold      = color.New(color.Bold).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
	boldCyan  = color.New(color.Bold, color.FgCyan).SprintFunc()
	todayMark = color.New(color.Bold, color.FgCyan).SprintFunc()
)

var statusStyles = map[model.Status]func(a ...interface{}) string{
	model.StatusTodo:  color.New(color.FgYellow).SprintFunc(),
	model.StatusDoing: color.New(color.FgCyan).SprintFunc(),
	model.StatusDone:  color.New(color.FgGreen).SprintFunc(),
}

// barColor returns the terminal color for a task color. Colors outside the
// palette render in the default foreground.
func barColor(hex string) *color.Color {
	if attr, ok := paletteAttrs[strings.ToUpper(hex)]; ok {
		return color.New(attr)
	}
	return color.New(color.Reset)
}

func styleStatus(s model.Status) string {
	if style, ok := statusStyles[s]; ok {
		return style(string(s))
	}
	return string(s)
}

// column maps a window percentage to a chart column.
func column(pos float64) int {
	c := int(math.Round(pos / 100 * chartWidth))
	if c < 0 {
		return 0
	}
	if c > chartWidth {
		return chartWidth
	}
	return c
}

// renderChart draws the packed rows as colored bars followed by a legend.
func renderChart(w io.Writer, view ChartView) error {
	if len(view.Months) > 0 {
		fmt.Fprintf(w, "%s  %s .. %s\n", bold("Timeline"), view.Months[0], view.Months[len(view.Months)-1])
	}
	fmt.Fprintf(w, "%6s %s\n", "", dim(monthRuler(view.Months)))

	if len(view.Rows) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return nil
	}

	for i, row := range view.Rows {
		fmt.Fprintf(w, "%6s %s\n", fmt.Sprintf("row %d", i+1), renderRow(row, view.Today))
	}

	fmt.Fprintln(w)
	for _, row := range view.Rows {
		for _, b := range row {
			swatch := barColor(b.Color).Sprint(string(barRune))
			fmt.Fprintf(w, "%s #%d %s  %s..%s  %s %d%%\n",
				swatch, b.ID, b.Title, b.Start, b.End, styleStatus(b.Status), b.Progress)
		}
	}
	if view.Today != nil {
		fmt.Fprintf(w, "%s today at %.1f%%\n", todayMark(string(todayRune)), *view.Today)
	}
	return nil
}

// renderRow fills one chart line. When rounding makes two bars share a cell
// the later bar owns it.
func renderRow(bars []BarView, today *float64) string {
	owner := make([]int, chartWidth)
	for i := range owner {
		owner[i] = -1
	}
	for i, b := range bars {
		from := column(b.Left)
		to := column(b.Left + b.Width)
		if to <= from {
			to = from + 1
		}
		for c := from; c < to && c < chartWidth; c++ {
			owner[c] = i
		}
	}

	todayCol := -1
	if today != nil {
		todayCol = column(*today)
		if todayCol >= chartWidth {
			todayCol = chartWidth - 1
		}
	}

	var sb strings.Builder
	for c := 0; c < chartWidth; {
		o := owner[c]
		end := c
		for end < chartWidth && owner[end] == o {
			end++
		}
		if o < 0 {
			for ; c < end; c++ {
				if c == todayCol {
					sb.WriteString(todayMark(string(todayRune)))
				} else {
					sb.WriteByte(' ')
				}
			}
			continue
		}
		sb.WriteString(barColor(bars[o].Color).Sprint(strings.Repeat(string(barRune), end-c)))
		c = end
	}
	return strings.TrimRight(sb.String(), " ")
}

// monthRuler labels each month at its starting column.
func monthRuler(months []string) string {
	line := []rune(strings.Repeat(" ", chartWidth))
	for i, m := range months {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			continue
		}
		label := []rune(t.Month().String()[:3])
		if t.Month() == time.January || i == 0 {
			label = []rune(t.Format("Jan06"))
		}
		col := column(float64(i) / float64(len(months)) * 100)
		for j, r := range label {
			if col+j >= chartWidth || (j == 0 && line[col] != ' ') {
				break
			}
			line[col+j] = r
		}
	}
	return strings.TrimRight(string(line), " ")
}

// renderGroups prints the task list grouped by status.
func renderGroups(w io.Writer, groups []GroupView) error {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := "All tasks"
		if g.Status != "" {
			header = strings.ToUpper(string(g.Status))
		}
		fmt.Fprintf(w, "%s (%d)\n", boldCyan(header), len(g.Tasks))
		if len(g.Tasks) == 0 {
			fmt.Fprintln(w, dim("  (none)"))
			continue
		}
		for _, t := range g.Tasks {
			renderTaskLine(w, t)
		}
	}
	return nil
}

func renderTaskLine(w io.Writer, t TaskView) {
	swatch := barColor(t.Color).Sprint(string(barRune))
	fmt.Fprintf(w, "  %s #%d %s  %s..%s  %s %d%%  %s\n",
		swatch, t.ID, t.Title, t.Start, t.End, styleStatus(t.Status), t.Progress, dim(t.Assignee))
}

// renderTask prints one task with its checklist.
func renderTask(w io.Writer, t TaskView) error {
	renderTaskLine(w, t)
	if t.Description != "" {
		fmt.Fprintf(w, "    %s\n", t.Description)
	}
	for _, item := range t.Checklist {
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(w, "    %s %d %s\n", mark, item.ID, item.Text)
	}
	return nil
}
