package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/papertrade/tradedash/internal/domain"
	"github.com/papertrade/tradedash/internal/notify"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	focusedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func (m Model) View() string {
	availableWidth := m.width - 4
	if availableWidth < 72 {
		availableWidth = 72
	}
	leftWidth := availableWidth/2 - 1
	rightWidth := availableWidth/2 - 1

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderForm(leftWidth),
		"",
		m.renderPositions(leftWidth),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderAnalytics(rightWidth),
		"",
		m.renderTrades(rightWidth),
	)

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(leftWidth).Render(left),
		"  ",
		panelStyle.Width(rightWidth).Render(right),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderNotification(),
		content,
		mutedStyle.Render("tab: next field · ←/→: change symbol/side · enter: place order · esc: quit"),
	)
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("Paper Trading Dashboard | %s", formatClock(time.Now()))
	return headerStyle.Render(title)
}

func (m Model) renderNotification() string {
	if m.notification == nil {
		return ""
	}
	if m.notification.Kind == notify.KindSuccess {
		return successStyle.Render(" ✓ " + m.notification.Text)
	}
	return errorStyle.Render(" ✗ " + m.notification.Text)
}

func (m Model) renderForm(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Place Trade"))
	lines = append(lines, strings.Repeat("─", width-4))

	lines = append(lines, m.formLine(focusSymbol, "Symbol", string(m.symbol())))
	lines = append(lines, m.formLine(focusSide, "Side", string(m.side())))
	lines = append(lines, m.formLine(focusQuantity, "Quantity", m.inputValue(m.quantity)))
	lines = append(lines, m.formLine(focusPrice, "Price", m.inputValue(m.price)))
	lines = append(lines, "")

	if m.controller.Pending() {
		lines = append(lines, mutedStyle.Render("Placing..."))
	} else {
		label := fmt.Sprintf("Place %s Order (enter)", m.side())
		if m.side() == domain.SideBuy {
			lines = append(lines, positiveStyle.Render(label))
		} else {
			lines = append(lines, negativeStyle.Render(label))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) formLine(field int, label, value string) string {
	line := fmt.Sprintf("%-9s %s", label, value)
	if m.focus == field {
		return focusedStyle.Render("› " + line)
	}
	return "  " + line
}

func (m Model) inputValue(v string) string {
	if v == "" {
		return mutedStyle.Render("_")
	}
	return v
}

func (m Model) renderPositions(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Open Positions"))
	lines = append(lines, strings.Repeat("─", width-4))

	if len(m.snapshot.Positions) == 0 {
		lines = append(lines, mutedStyle.Render("No open positions"))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, fmt.Sprintf("%-10s %12s %14s", "Symbol", "Net Qty", "PnL"))
	for _, symbol := range sortedSymbols(m.snapshot.Positions) {
		p := m.snapshot.Positions[symbol]
		// pad before styling so ANSI codes don't skew column widths
		pnl := fmt.Sprintf("%14s", formatMoney(p.PnL))
		if p.PnL.IsNegative() {
			pnl = negativeStyle.Render(pnl)
		} else {
			pnl = positiveStyle.Render(pnl)
		}
		lines = append(lines, fmt.Sprintf("%-10s %12d %s", symbol, p.NetQuantity, pnl))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderAnalytics(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Today's Analytics"))
	lines = append(lines, strings.Repeat("─", width-4))

	if len(m.snapshot.Analytics) == 0 {
		lines = append(lines, mutedStyle.Render("No trades today"))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, fmt.Sprintf("%-10s %12s %14s", "Symbol", "Total Qty", "Total PnL"))
	for _, symbol := range sortedSymbols(m.snapshot.Analytics) {
		a := m.snapshot.Analytics[symbol]
		pnl := fmt.Sprintf("%14s", formatMoney(a.TotalPnL))
		if a.TotalPnL.IsNegative() {
			pnl = negativeStyle.Render(pnl)
		} else {
			pnl = positiveStyle.Render(pnl)
		}
		lines = append(lines, fmt.Sprintf("%-10s %12d %s", symbol, a.TotalQuantity, pnl))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTrades(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Trades Today"))
	lines = append(lines, strings.Repeat("─", width-4))

	if len(m.snapshot.Trades) == 0 {
		lines = append(lines, mutedStyle.Render("No trades executed today"))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, fmt.Sprintf("%-9s %-10s %-5s %8s %12s", "Time", "Symbol", "Side", "Qty", "Price"))
	for _, t := range m.snapshot.Trades {
		side := fmt.Sprintf("%-5s", t.Side)
		if t.Side == domain.SideBuy {
			side = positiveStyle.Render(side)
		} else {
			side = negativeStyle.Render(side)
		}
		lines = append(lines, fmt.Sprintf("%-9s %-10s %s %8d %12s",
			formatTradeTime(t.TradeTime.Time), truncate(string(t.Symbol), 10), side, t.Quantity, formatMoney(t.Price)))
	}
	return strings.Join(lines, "\n")
}

// sortedSymbols gives maps a stable display order.
func sortedSymbols[V any](m map[domain.Symbol]V) []domain.Symbol {
	symbols := make([]domain.Symbol, 0, len(m))
	for s := range m {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}
