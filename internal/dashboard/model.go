package dashboard

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/papertrade/tradedash/internal/domain"
	"github.com/papertrade/tradedash/internal/notify"
	"github.com/papertrade/tradedash/internal/state"
	"github.com/papertrade/tradedash/internal/submit"
)

var log = logrus.WithField("module", "dashboard")

// form field focus order
const (
	focusSymbol = iota
	focusSide
	focusQuantity
	focusPrice
	focusCount
)

// Scheduler is the poller lifecycle as seen from the render layer.
type Scheduler interface {
	Start(ctx context.Context)
	Stop()
}

// Model is the dashboard's bubbletea model. It owns the UI state
// (order form, focus) and re-reads the store and notifier on a short
// tick; all remote state flows through the store, never through
// messages from the fetch goroutines.
type Model struct {
	store      *state.Store
	notifier   *notify.Notifier
	controller *submit.Controller
	scheduler  Scheduler

	snapshot     state.Snapshot
	notification *notify.Notification

	symbolIdx int
	sideIdx   int
	quantity  string
	price     string
	focus     int

	width  int
	height int
}

// NewModel wires the render layer to the synchronization core.
func NewModel(store *state.Store, notifier *notify.Notifier, controller *submit.Controller, scheduler Scheduler) Model {
	return Model{
		store:      store,
		notifier:   notifier,
		controller: controller,
		scheduler:  scheduler,
		focus:      focusQuantity,
	}
}

type tickMsg time.Time

type submitResultMsg struct {
	err error
}

func tick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init mounts the dashboard: the scheduler goes active and the render
// tick starts.
func (m Model) Init() tea.Cmd {
	m.scheduler.Start(context.Background())
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.snapshot = m.store.Snapshot()
		if n, ok := m.notifier.Current(); ok {
			m.notification = &n
		} else {
			m.notification = nil
		}
		return m, tick()

	case submitResultMsg:
		if msg.err == nil {
			// Quantity and price clear for the next order; symbol and
			// side persist for rapid repeat entry.
			m.quantity = ""
			m.price = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		// Unmount: the polling timer must die with the dashboard.
		m.scheduler.Stop()
		log.Info("dashboard unmounted")
		return m, tea.Quit

	case "tab", "down":
		m.focus = (m.focus + 1) % focusCount
		return m, nil

	case "shift+tab", "up":
		m.focus = (m.focus - 1 + focusCount) % focusCount
		return m, nil

	case "left":
		m.cycleChoice(-1)
		return m, nil

	case "right", " ":
		m.cycleChoice(1)
		return m, nil

	case "enter":
		return m, m.submitCmd()

	case "backspace":
		m.editField(func(s string) string {
			if s == "" {
				return s
			}
			return s[:len(s)-1]
		})
		return m, nil
	}

	if r := msg.String(); len(r) == 1 {
		m.typeRune(r)
	}
	return m, nil
}

func (m *Model) cycleChoice(delta int) {
	switch m.focus {
	case focusSymbol:
		n := len(domain.Symbols())
		m.symbolIdx = (m.symbolIdx + delta + n) % n
	case focusSide:
		m.sideIdx = (m.sideIdx + delta + 2) % 2
	}
}

func (m *Model) editField(edit func(string) string) {
	switch m.focus {
	case focusQuantity:
		m.quantity = edit(m.quantity)
	case focusPrice:
		m.price = edit(m.price)
	}
}

// typeRune appends typed characters to the focused numeric field.
// Filtering here is cosmetic only; ParseForm is the real gate.
func (m *Model) typeRune(r string) {
	switch m.focus {
	case focusQuantity:
		if strings.ContainsAny(r, "0123456789") {
			m.quantity += r
		}
	case focusPrice:
		if strings.ContainsAny(r, "0123456789.") {
			m.price += r
		}
	}
}

func (m Model) symbol() domain.Symbol {
	return domain.Symbols()[m.symbolIdx]
}

func (m Model) side() domain.Side {
	if m.sideIdx == 0 {
		return domain.SideBuy
	}
	return domain.SideSell
}

// submitCmd hands the raw form to the submission controller off the UI
// loop. The controller's pending guard makes a repeated enter press a
// no-op while the first submission is in flight.
func (m Model) submitCmd() tea.Cmd {
	in := submit.FormInput{
		Symbol:   string(m.symbol()),
		Side:     string(m.side()),
		Quantity: m.quantity,
		Price:    m.price,
	}
	controller := m.controller
	return func() tea.Msg {
		err := controller.Submit(context.Background(), in)
		return submitResultMsg{err: err}
	}
}
