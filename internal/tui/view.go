package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/poker"
)

const sidebarWidth = 34

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionStyle := paneStyle.
		Width(max(1, m.width-2)).
		Height(max(1, actionHeight))
	if m.focusedPane == 1 {
		actionStyle = actionStyle.BorderForeground(focusedColor)
	}
	actionPane := actionStyle.Render(actionContent)

	topHeight := max(1, m.height-lipgloss.Height(actionPane)-2)
	sidebar := paneStyle.
		Width(sidebarWidth).
		Height(topHeight).
		Render(m.renderSidebar())

	m.logViewport.Width = max(1, m.width-sidebarWidth-4)
	m.logViewport.Height = topHeight
	logStyle := paneStyle.Width(m.logViewport.Width).Height(topHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(focusedColor)
	}
	logPane := logStyle.Render(m.logViewport.View())

	top := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, top, actionPane)
}

func (m *Model) renderSidebar() string {
	st := m.state
	var b strings.Builder

	title := st.Name
	if st.Hand > 0 {
		title = fmt.Sprintf("%s  hand #%d", st.Name, st.Hand)
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(warningStyle.Render(fmt.Sprintf("Pot: $%d", st.Pot)))
	if st.CurrentBet > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("  Bet: $%d", st.CurrentBet)))
	}
	b.WriteString("\n")
	if st.Hand > 0 {
		fmt.Fprintf(&b, "%s %s\n", strings.ToUpper(st.Street.String()), formatCards(st.Board))
	}
	b.WriteString("\n")

	for _, seat := range st.Seats {
		marker := "  "
		if seat.Dealer {
			marker = "D "
		}
		line := fmt.Sprintf("%s%-11s $%d", marker, seat.Name, seat.Chips)
		if seat.Bet > 0 {
			line += fmt.Sprintf(" (bet $%d)", seat.Bet)
		}
		switch {
		case seat.Folded && st.Hand > 0:
			line = infoStyle.Render(line + " folded")
		case seat.AllIn:
			line = warningStyle.Render(line + " all-in")
		case seat.ToAct:
			line = toActStyle.Render(line + " <")
		}
		b.WriteString(line)
		if len(seat.HoleCards) > 0 && seat.Seat != st.Viewer {
			b.WriteString(" " + formatCards(seat.HoleCards))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderActionPane() string {
	st := m.state
	var b strings.Builder

	if st.Viewer >= 0 && st.Viewer < len(st.Seats) {
		me := st.Seats[st.Viewer]
		b.WriteString(handInfoStyle.Render(fmt.Sprintf("Your hand: %s  Chips: $%d", formatCards(me.HoleCards), me.Chips)))
		b.WriteString("\n")
	}

	if m.showHints && st.Coaching != nil {
		c := st.Coaching
		b.WriteString(strengthStyle(c.Strength).Render(fmt.Sprintf("Strength: %.0f%% (%s)", c.Strength, c.Label)))
		if c.Hand != "" {
			b.WriteString(infoStyle.Render("  " + c.Hand))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "Suggested: %s, %s\n", strings.ToUpper(c.Recommendation.Action.String()), c.Recommendation.Reason)
		for _, tip := range c.Tips {
			b.WriteString(infoStyle.Render("• " + tip))
			b.WriteString("\n")
		}
	}

	switch {
	case st.GameOver:
		b.WriteString(errorStyle.Render("Game over. Press q to quit."))
	case st.HandOver:
		b.WriteString(successStyle.Render("Hand over. Press Enter for the next hand."))
	case len(st.LegalActions) > 0:
		b.WriteString(m.renderActions())
	default:
		b.WriteString(handInfoStyle.Render("Waiting..."))
	}
	b.WriteString("\n")

	if m.notice != "" {
		if m.noticeBad {
			b.WriteString(errorStyle.Render(m.notice))
		} else {
			b.WriteString(infoStyle.Render(m.notice))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.actionInput.View())
	b.WriteString("\n")
	if m.focusedPane == 0 {
		b.WriteString(infoStyle.Render("Log focused: ↑↓ scroll, Tab to input"))
	} else {
		b.WriteString(infoStyle.Render("Tab to scroll log • h toggles hints • ? help • Ctrl+C to quit"))
	}
	return b.String()
}

func (m *Model) renderActions() string {
	var actions []string
	for _, a := range m.state.LegalActions {
		switch a {
		case game.Fold:
			actions = append(actions, errorStyle.Render("[fold]"))
		case game.Check:
			actions = append(actions, successStyle.Render("[check]"))
		case game.Call:
			actions = append(actions, successStyle.Render(fmt.Sprintf("[call $%d]", m.state.ToCall)))
		case game.Raise:
			actions = append(actions, warningStyle.Render(fmt.Sprintf("[raise %d]", defaultRaise(m.state))))
		case game.AllIn:
			actions = append(actions, warningStyle.Render("[allin]"))
		}
	}
	return actionsStyle.Render("Actions: " + strings.Join(actions, " "))
}

func formatCards(cards []poker.Card) string {
	if len(cards) == 0 {
		return ""
	}
	formatted := make([]string, len(cards))
	for i, c := range cards {
		if c.IsRed() {
			formatted[i] = redCardStyle.Render(c.String())
		} else {
			formatted[i] = blackCardStyle.Render(c.String())
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
