package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/claritycoach/coach/internal/ui/theme"
)

// Bar displays a horizontal share bar, used for usage breakdowns.
type Bar struct {
	Label string
	Count int
	Total int
	Width int
}

// NewBar creates a bar showing count out of total.
func NewBar(label string, count, total, width int) Bar {
	return Bar{Label: label, Count: count, Total: total, Width: width}
}

// Percent returns the share of Count in Total, 0 when Total is 0.
func (b Bar) Percent() float64 {
	if b.Total <= 0 {
		return 0
	}
	return float64(b.Count) / float64(b.Total)
}

// View renders the bar.
func (b Bar) View() string {
	result := theme.Label.Render(b.Label)

	barWidth := max(b.Width-lipgloss.Width(result)-10, 4)

	filled := min(max(int(float64(barWidth)*b.Percent()), 0), barWidth)
	empty := barWidth - filled

	result += lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	return result + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf(" %3d  %3d%%", b.Count, int(b.Percent()*100)))
}
