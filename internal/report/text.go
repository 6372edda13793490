package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rshade/carbonwise/internal/carbon"
)

// Text layout.
const (
	boxWidth      = 72
	titlePadding  = 4
	categoryWidth = 8
)

// CongratulationsMessage is shown when no recommendation applies.
const CongratulationsMessage = "Great job! Your carbon footprint is already quite low. Keep up the good work!"

func titleColor() lipgloss.Color { return lipgloss.Color("39") }
func borderColor() lipgloss.Color { return lipgloss.Color("240") }
func sectionColor() lipgloss.Color { return lipgloss.Color("33") }
func mutedColor() lipgloss.Color { return lipgloss.Color("245") }

// levelColor maps a level to a traffic-light colour.
func levelColor(l carbon.Level) lipgloss.Color {
	switch l {
	case carbon.LevelLow:
		return lipgloss.Color("42")
	case carbon.LevelModerate:
		return lipgloss.Color("220")
	case carbon.LevelHigh:
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("196")
	}
}

// isWriterTerminal reports whether w is a terminal. Buffers and pipes get
// plain output.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// RenderText writes the human-readable report, styled when w is a terminal.
func RenderText(w io.Writer, res carbon.Result) error {
	if isWriterTerminal(w) {
		return renderStyled(w, res)
	}
	return renderPlain(w, res)
}

// painter applies lipgloss styles, or passes text through unchanged for
// plain output.
type painter struct {
	styled bool
}

func (p painter) paint(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func renderPlain(w io.Writer, res carbon.Result) error {
	body := buildBody(painter{}, res)
	if _, err := io.WriteString(w, body); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func renderStyled(w io.Writer, res carbon.Result) error {
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor()).
		Padding(0, 1).
		Width(boxWidth)

	body := strings.TrimRight(buildBody(painter{styled: true}, res), "\n")
	if _, err := fmt.Fprintln(w, box.Render(body)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// buildBody lays out the report sections.
func buildBody(p painter, res carbon.Result) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor())
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(sectionColor())
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor())

	var b strings.Builder

	b.WriteString(p.paint(titleStyle, "CARBON FOOTPRINT"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", boxWidth-titlePadding))
	b.WriteString("\n\n")

	level := carbon.ClassifyLevel(res.MonthlyEmissions)
	levelStyle := lipgloss.NewStyle().Bold(true).Foreground(levelColor(level))
	fmt.Fprintf(&b, "Monthly: %s\n", carbon.FormatKg(res.MonthlyEmissions))
	fmt.Fprintf(&b, "Yearly:  %s\n", carbon.FormatKg(res.YearlyEmissions))
	fmt.Fprintf(&b, "Level:   %s - %s\n", p.paint(levelStyle, level.String()), level.Description())
	if text := equivalencyText(res.YearlyEmissions); text != "" {
		b.WriteString(p.paint(mutedStyle, text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(p.paint(sectionStyle, "BREAKDOWN"))
	b.WriteString("\n")
	writeBreakdown(&b, res)

	b.WriteString("\n")
	b.WriteString(p.paint(sectionStyle, "RECOMMENDATIONS"))
	b.WriteString("\n")
	if len(res.Recommendations) == 0 {
		fmt.Fprintf(&b, "  %s\n", CongratulationsMessage)
		return b.String()
	}
	for i, rec := range res.Recommendations {
		fmt.Fprintf(&b, "  %d. [%s] %s\n", i+1, rec.Category, rec.Suggestion)
		b.WriteString(p.paint(mutedStyle, "     Potential reduction: "+rec.PotentialReduction))
		b.WriteString("\n")
	}
	return b.String()
}

func writeBreakdown(b *strings.Builder, res carbon.Result) {
	bd := res.Breakdown
	rows := []struct {
		category carbon.Category
		kg       float64
		detail   string
	}{
		{carbon.CategoryTravel, bd.Travel.Total, fmt.Sprintf("car %s, transit %s, flights %s",
			carbon.FormatKg(bd.Travel.Car), carbon.FormatKg(bd.Travel.PublicTransport), carbon.FormatKg(bd.Travel.Flights))},
		{carbon.CategoryEnergy, bd.Energy.Total, fmt.Sprintf("efficiency bonus %s",
			carbon.FormatFraction(bd.Energy.EfficiencyBonus))},
		{carbon.CategoryWaste, bd.Waste.NetEmissions, fmt.Sprintf("recycling reduction %s",
			carbon.FormatFraction(bd.Waste.RecyclingReduction))},
		{carbon.CategoryFood, bd.Food.Emissions, fmt.Sprintf("%s diet", bd.Food.Type)},
	}

	for _, r := range rows {
		fmt.Fprintf(b, "  %-*s %s%s\n", categoryWidth, r.category, carbon.FormatKg(r.kg), share(r.kg, res.MonthlyEmissions))
		fmt.Fprintf(b, "  %-*s %s\n", categoryWidth, "", r.detail)
	}
}

// share is the " (NN%)" suffix for a category, omitted when the total is
// not positive.
func share(kg, total float64) string {
	if total <= 0 {
		return ""
	}
	return " (" + carbon.FormatFraction(kg/total) + ")"
}
