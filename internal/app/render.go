package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rulecanvas/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a94a6"))
	stepStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	badgeStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#ffffff"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2a3850")).
			Padding(0, 1)

	complexityColors = map[domain.Complexity]lipgloss.Color{
		domain.ComplexityNone:    lipgloss.Color("#8a94a6"),
		domain.ComplexitySimple:  lipgloss.Color("#8BC34A"),
		domain.ComplexityMedium:  lipgloss.Color("#FFC107"),
		domain.ComplexityComplex: lipgloss.Color("#e53935"),
	}
)

// renderPreview draws a rule preview for the terminal: the sentence in a box,
// a complexity badge with the block counts, then the execution flow.
func renderPreview(title string, p domain.Preview) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(titleStyle.Render(title))
		sb.WriteString("\n")
	}
	sb.WriteString(boxStyle.Render(p.Description))
	sb.WriteString("\n")

	badge := badgeStyle.Background(complexityColors[p.Complexity]).Render(string(p.Complexity))
	counts := mutedStyle.Render(fmt.Sprintf("%d blocks · %d triggers · %d conditions · %d actions",
		p.Total, p.Counts.Triggers, p.Counts.Conditions, p.Counts.Actions))
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, badge, " ", counts))
	sb.WriteString("\n")

	for i, step := range p.Flow {
		sb.WriteString(stepStyle.Render(fmt.Sprintf("%d. %s", i+1, step.Step)))
		sb.WriteString("\n")
		for _, item := range step.Items {
			sb.WriteString("   • ")
			sb.WriteString(item)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
