package tasks

import "github.com/charmbracelet/lipgloss"

// CategoryColor names the badge color for a category.
func CategoryColor(category string) string {
	switch category {
	case "Work":
		return "blue"
	case "Personal":
		return "green"
	case "Health":
		return "red"
	default:
		return "gray"
	}
}

// PriorityColor names the indicator color for a priority.
func PriorityColor(p Priority) string {
	switch p {
	case PriorityHigh:
		return "red"
	case PriorityMedium:
		return "yellow"
	case PriorityLow:
		return "green"
	default:
		return "gray"
	}
}

var palette = map[string]lipgloss.AdaptiveColor{
	"blue":   {Light: "#1E40AF", Dark: "#60A5FA"},
	"green":  {Light: "#166534", Dark: "#4ADE80"},
	"red":    {Light: "#991B1B", Dark: "#F87171"},
	"yellow": {Light: "#854D0E", Dark: "#FACC15"},
	"gray":   {Light: "#374151", Dark: "#9CA3AF"},
}

// CategoryStyle is the terminal style for a category badge.
func CategoryStyle(category string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(palette[CategoryColor(category)])
}

// PriorityStyle is the terminal style for a priority marker.
func PriorityStyle(p Priority) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(palette[PriorityColor(p)]).Bold(p == PriorityHigh)
}
