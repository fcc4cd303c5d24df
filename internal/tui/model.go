// Package tui is the presentation layer and gesture host for the dispatch
// board. Keyboard navigation plays the role of the pointer: picking a card
// up emits a drag start, moving the cursor emits moves with synthesized
// pixel geometry, and dropping or escaping emits end/cancel. All board
// mutations go through the drag state machine.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tripboard/internal/daycache"
	"github.com/julianstephens/tripboard/internal/drag"
	"github.com/julianstephens/tripboard/internal/models"
	"github.com/julianstephens/tripboard/internal/nowline"
)

type sessionState int

const (
	stateBoard sessionState = iota
	stateGoDate
)

const (
	queuePaneWidth = 38
	colWidth       = 14
	axisWidth      = 6
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type Model struct {
	session   *daycache.Session
	machine   *drag.Machine
	projector *nowline.Projector

	keys keyMap
	help help.Model
	grid viewport.Model

	state    sessionState
	form     *huh.Form
	formDate *string

	now    time.Time
	status string

	// Cursor over drop targets: the three queues first, then the vehicle
	// columns in grid order.
	targetIdx int
	queueSel  int // selected card inside a hovered queue
	blockSel  int // selected block inside a hovered vehicle column
	slotIdx   int // slot cursor inside a hovered vehicle column

	width  int
	height int
}

func NewModel(session *daycache.Session) Model {
	m := Model{
		session:   session,
		projector: nowline.New(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		grid:      viewport.New(60, 20),
		now:       time.Now(),
	}
	if b := session.Board(); b != nil {
		m.machine = drag.NewMachine(b)
	}
	m.projector.SetViewedDate(session.ViewDate())
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// targetIDs enumerates the drop-target namespace in cursor order.
func (m Model) targetIDs() []string {
	ids := []string{
		drag.TargetQueueIncoming,
		drag.TargetQueueUnassigned,
		drag.TargetQueueWillCall,
	}
	if b := m.session.Board(); b != nil {
		for _, v := range b.Vehicles() {
			ids = append(ids, drag.VehicleTarget(v.VehicleID))
		}
	}
	return ids
}

func (m Model) targetID() string {
	ids := m.targetIDs()
	if len(ids) == 0 {
		return ""
	}
	idx := m.targetIdx
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ids) {
		idx = len(ids) - 1
	}
	return ids[idx]
}

func (m Model) onQueue() bool {
	return m.targetIdx < len(models.AllQueues)
}

func (m Model) hoveredQueue() models.QueueName {
	if !m.onQueue() {
		return ""
	}
	return models.AllQueues[m.targetIdx]
}

// hoveredVehicle returns the vehicle column under the cursor.
func (m Model) hoveredVehicle() (models.Vehicle, bool) {
	b := m.session.Board()
	if b == nil || m.onQueue() {
		return models.Vehicle{}, false
	}
	vehicles := b.Vehicles()
	idx := m.targetIdx - len(models.AllQueues)
	if idx < 0 || idx >= len(vehicles) {
		return models.Vehicle{}, false
	}
	return vehicles[idx], true
}
