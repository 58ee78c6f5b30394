package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"aspects/internal/game"
	"aspects/internal/game/aspect"
	"aspects/internal/game/world"
)

const sidePanelWidth = 34

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FAF")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	dialogueStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("13")).
			Padding(0, 1)

	wallStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	floorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	playerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	imaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	combinerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	neutralStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Italic(true)
	creditsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
)

func (m Model) View() string {
	if m.snap.State == game.StateGameOver && len(m.credits) > 0 {
		return m.creditsView()
	}

	title := titleStyle.Render(fmt.Sprintf("ASPECTS · %s · %s", m.snap.Level, m.snap.State))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.mapView()),
		lipgloss.JoinVertical(lipgloss.Left,
			panelStyle.Width(sidePanelWidth).Render(m.combinerView()),
			panelStyle.Width(sidePanelWidth).Render(m.log.View()),
		),
	)

	var footer string
	switch {
	case m.dialogue != nil:
		footer = m.dialogueView()
	case m.snap.Blocked != "":
		footer = noticeStyle.Render(m.snap.Blocked)
	case m.notice != "":
		footer = noticeStyle.Render(m.notice)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, footer, m.help.View(m.keys))
}

func (m Model) mapView() string {
	cells := map[world.Position]string{}
	for _, s := range m.snap.Sockets {
		glyph := "◇"
		style := emptyStyle
		if s.Aspect != "" {
			glyph = "◆"
			style = aspectStyle(s.Aspect)
		}
		if m.snap.Target == "socket "+s.ID {
			style = style.Reverse(true)
		}
		cells[world.Position{X: s.X, Y: s.Y}] = style.Render(glyph)
	}

	station := combinerStyle
	if m.snap.Target == "combiner" {
		station = station.Reverse(true)
	}
	cells[m.snap.Combiner] = station.Render("⊗")
	if m.snap.Ima != nil {
		cells[*m.snap.Ima] = imaStyle.Render("&")
	}
	cells[m.snap.Player] = playerStyle.Render("@")

	var b strings.Builder
	for y, row := range m.snap.Tiles {
		for x, c := range row {
			if cell, ok := cells[world.Position{X: x, Y: y}]; ok {
				b.WriteString(cell)
				continue
			}
			if c == '#' {
				b.WriteString(wallStyle.Render("█"))
			} else {
				b.WriteString(floorStyle.Render("·"))
			}
		}
		if y < len(m.snap.Tiles)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) combinerView() string {
	var b strings.Builder
	b.WriteString(labelStyle.Bold(true).Render("Combiner") + "\n")
	fmt.Fprintf(&b, "  top     %s\n", slotText(m.snap.Left))
	fmt.Fprintf(&b, "  bottom  %s\n", slotText(m.snap.Right))
	switch {
	case m.snap.Preview != "" && m.snap.Blocked == "":
		fmt.Fprintf(&b, "  ⇒       %s\n", aspectStyle(m.snap.Preview).Render(m.snap.Preview))
	case m.snap.Blocked != "":
		fmt.Fprintf(&b, "  ⇒       %s\n", noticeStyle.Render("?"))
	default:
		b.WriteString("\n")
	}

	if strings.HasPrefix(m.snap.Target, "socket ") {
		id := strings.TrimPrefix(m.snap.Target, "socket ")
		if s, ok := m.snap.Socket(id); ok {
			fmt.Fprintf(&b, "\nNear %s: %s", id, aspectStyle(s.Aspect).Render(s.Aspect))
		}
	} else if m.snap.Target == "combiner" {
		b.WriteString("\nNear the combiner")
	}
	fmt.Fprintf(&b, "\nEmpty sockets: %d", m.snap.EmptySockets())
	if m.snap.Ending != "" {
		fmt.Fprintf(&b, "\nEnding: %s (%d)", m.snap.Ending, m.snap.Score)
	}
	return b.String()
}

func (m Model) dialogueView() string {
	width := m.width - 4
	if width < 20 {
		width = 60
	}
	var text string
	if m.dialogue.loading {
		text = loadingGlyph(m.animationFrame)
	} else if len(m.dialogue.lines) > 0 {
		text = m.dialogue.lines[m.dialogue.index]
		if !m.dialogue.last() {
			text += " ▸"
		}
	}
	return dialogueStyle.Width(width).Render(text)
}

func (m Model) creditsView() string {
	var lines []string
	for _, t := range m.credits {
		lines = append(lines, creditsStyle.Render(t.Text()))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) logContent() string {
	return strings.Join(m.messages, "\n")
}

func logWidth() int {
	return sidePanelWidth - 2
}

func logHeight(total int) int {
	h := total - 16
	if h < 3 {
		h = 3
	}
	return h
}

func slotText(name string) string {
	if name == "" {
		return emptyStyle.Render("-")
	}
	return aspectStyle(name).Render(name)
}

func aspectStyle(name string) lipgloss.Style {
	a, err := aspect.Parse(name)
	if err != nil {
		return neutralStyle
	}
	switch w := aspect.Weight(a); {
	case w > 0:
		return positiveStyle
	case w < 0:
		return negativeStyle
	}
	return neutralStyle
}

func loadingGlyph(frame int) string {
	arc := []string{"◜", "◠", "◝", "◞", "◡", "◟"}
	return arc[(frame/2)%len(arc)]
}
