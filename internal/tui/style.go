package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = func() lipgloss.Style {
		b := lipgloss.NormalBorder()
		return lipgloss.NewStyle().BorderStyle(b).Padding(0, 1)
	}

	inactiveTabStyle = func() lipgloss.Style {
		return lipgloss.NewStyle().Border(inactiveTabBorder()).Padding(0, 1).Faint(true)
	}

	activeTabStyle = func() lipgloss.Style {
		return lipgloss.NewStyle().Border(activeTabBorder()).Padding(0, 1)
	}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "236", Dark: "248"})
	emptyStyle  = lipgloss.NewStyle().Italic(true).Faint(true).PaddingLeft(1)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func activeTabBorder() lipgloss.Border {
	b := lipgloss.NormalBorder()
	b.BottomLeft = "┘"
	b.BottomRight = "└"
	b.Bottom = ""
	return b
}

func inactiveTabBorder() lipgloss.Border {
	b := lipgloss.NormalBorder()
	b.BottomLeft = "┴"
	b.BottomRight = "┴"
	return b
}

func textRed(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")).Render(s)
}

// I am not colorblind. I know it's turquoise.
func textGreen(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Render(s)
}

func titleBar(t string, width int) string {
	titleBox := titleStyle().Render(t)

	dividerLength := width - lipgloss.Width(titleBox)

	return lipgloss.JoinHorizontal(lipgloss.Center, titleBox, line(dividerLength))
}

func line(w int) string {
	return strings.Repeat("─", max(0, w))
}

func menuBar(tabs []Collaborator, active int, width int) string {
	if len(tabs) == 0 {
		return ""
	}

	var tabText []string
	for i, tab := range tabs {
		r := inactiveTabStyle().Render(tab.Name)
		if i == active {
			r = activeTabStyle().Render(tab.Name)
		}
		tabText = append(tabText, r)
	}
	renderedTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabText...)
	dividerLength := width - lipgloss.Width(renderedTabs)
	return lipgloss.JoinHorizontal(lipgloss.Bottom, renderedTabs, line(dividerLength))
}

func appFooter(width int) string {
	return titleBar("TAB: Collaborator | CTRL+R: Refresh | CTRL+Y: Copy | ESC: Exit", width)
}
