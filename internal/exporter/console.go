package exporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qareport/pkg/contracts/domain"
)

// SuccessMessage is printed once every report has been written
const SuccessMessage = "Reports generated successfully!"

var (
	summaryBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// ConsoleSummary prints the run summary and written report paths
type ConsoleSummary struct {
	out io.Writer
}

// NewConsoleSummary creates a summary printer writing to out
func NewConsoleSummary(out io.Writer) *ConsoleSummary {
	return &ConsoleSummary{out: out}
}

// Render builds the boxed summary text
func (c *ConsoleSummary) Render(analysis domain.Analysis, reports []domain.ReportMetadata) string {
	lines := []string{titleStyle.Render(domain.ReportTitle), ""}

	for _, line := range analysis.SummaryLines() {
		text := line.Text()
		switch line.Label {
		case "Passed Tests":
			text = passStyle.Render(text)
		case "Failed Tests":
			if analysis.FailedTests > 0 {
				text = failStyle.Render(text)
			}
		}
		lines = append(lines, text)
	}

	if other := analysis.OtherTests(); other > 0 {
		lines = append(lines, fmt.Sprintf("Other Statuses: %d", other))
	}

	if len(reports) > 0 {
		lines = append(lines, "")
		for _, r := range reports {
			lines = append(lines, fmt.Sprintf("%-5s %s", r.Format, r.FilePath))
		}
	}

	return summaryBox.Render(strings.Join(lines, "\n"))
}

// Print writes the summary box followed by the success message
func (c *ConsoleSummary) Print(analysis domain.Analysis, reports []domain.ReportMetadata) error {
	if _, err := fmt.Fprintln(c.out, c.Render(analysis, reports)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.out, SuccessMessage)
	return err
}
