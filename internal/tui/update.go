package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tripboard/internal/drag"
	"github.com/julianstephens/tripboard/internal/geometry"
	"github.com/julianstephens/tripboard/internal/nowline"
	"github.com/julianstephens/tripboard/internal/timeutil"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.grid.Width = max(20, msg.Width-queuePaneWidth-2)
		m.grid.Height = max(5, msg.Height-7)
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.applyClockTick()
		return m, tick()
	}

	if m.state == stateGoDate {
		return m.updateGoDate(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.updateBoardKeys(msg)
	}

	return m, nil
}

func (m Model) updateBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Up):
		m.moveVertical(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveVertical(1)

	case key.Matches(msg, m.keys.PickDrop):
		m.pickOrDrop()

	case key.Matches(msg, m.keys.Cancel):
		if m.machine != nil && m.machine.Dragging() {
			m.machine.Cancel(drag.CancelEvent{})
			m.status = ""
		}

	case key.Matches(msg, m.keys.PrevDay):
		m.setViewDate(timeutil.ShiftDate(m.session.ViewDate(), -1))

	case key.Matches(msg, m.keys.NextDay):
		m.setViewDate(timeutil.ShiftDate(m.session.ViewDate(), 1))

	case key.Matches(msg, m.keys.Today):
		if date, ok := m.todayInOrgZone(); ok {
			m.setViewDate(date)
		}

	case key.Matches(msg, m.keys.GoDate):
		return m.openGoDateForm()

	case key.Matches(msg, m.keys.JumpNow):
		m.jumpToNow()
	}

	return m, nil
}

func (m Model) updateGoDate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.state = stateBoard
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.formDate != nil && *m.formDate != "" {
			m.setViewDate(*m.formDate)
		}
		m.state = stateBoard
		m.form = nil
	case huh.StateAborted:
		m.state = stateBoard
		m.form = nil
	}

	return m, cmd
}

func (m Model) openGoDateForm() (tea.Model, tea.Cmd) {
	date := m.session.ViewDate()
	m.formDate = &date
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Go to schedule date").
				Placeholder("YYYY-MM-DD").
				Value(m.formDate),
		),
	)
	m.state = stateGoDate
	return m, m.form.Init()
}

// moveCursor shifts the hovered target; while dragging this is a gesture
// move event.
func (m *Model) moveCursor(delta int) {
	count := len(m.targetIDs())
	if count == 0 {
		return
	}
	m.targetIdx = ((m.targetIdx+delta)%count + count) % count
	m.queueSel = 0
	m.blockSel = 0
	m.emitMove()
}

func (m *Model) moveVertical(delta int) {
	b := m.session.Board()
	if b == nil {
		return
	}

	if m.machine != nil && m.machine.Dragging() && !m.onQueue() {
		maxSlot := b.Day().SlotsPerDayView - geometry.TripBlockPx/geometry.SlotPx
		m.slotIdx = clamp(m.slotIdx+delta, 0, maxSlot)
		m.ensureSlotVisible()
		m.emitMove()
		return
	}

	if m.onQueue() {
		trips := b.QueueContents(m.hoveredQueue())
		if len(trips) > 0 {
			m.queueSel = clamp(m.queueSel+delta, 0, len(trips)-1)
		}
		return
	}

	if v, ok := m.hoveredVehicle(); ok {
		blocks := b.AssignmentsForVehicle(v.VehicleID)
		if len(blocks) > 0 {
			m.blockSel = clamp(m.blockSel+delta, 0, len(blocks)-1)
		} else {
			m.grid.SetYOffset(m.grid.YOffset + delta)
		}
	}
}

// pickOrDrop starts a gesture from the card under the cursor, or ends the
// in-flight gesture over the current target.
func (m *Model) pickOrDrop() {
	b := m.session.Board()
	if b == nil || m.machine == nil {
		return
	}

	if m.machine.Dragging() {
		m.machine.End(drag.EndEvent{
			TargetID:     m.targetID(),
			PointerTopPx: float64(geometry.PixelFromSlotIndex(m.slotIdx)),
			TargetTopPx:  0,
		})
		m.status = ""
		return
	}

	if m.onQueue() {
		trips := b.QueueContents(m.hoveredQueue())
		if len(trips) == 0 {
			return
		}
		sel := clamp(m.queueSel, 0, len(trips)-1)
		trip := trips[sel]
		m.machine.Start(drag.StartEvent{Trip: &trip})
		m.emitMove()
		return
	}

	if v, ok := m.hoveredVehicle(); ok {
		blocks := b.AssignmentsForVehicle(v.VehicleID)
		if len(blocks) == 0 {
			return
		}
		sel := clamp(m.blockSel, 0, len(blocks)-1)
		block := blocks[sel]
		trip := block.Trip
		m.slotIdx = block.SlotIndex
		m.machine.Start(drag.StartEvent{Trip: &trip})
		m.emitMove()
	}
}

func (m *Model) emitMove() {
	if m.machine == nil || !m.machine.Dragging() {
		return
	}
	m.machine.Move(drag.MoveEvent{
		TargetID:     m.targetID(),
		PointerTopPx: float64(geometry.PixelFromSlotIndex(m.slotIdx)),
		TargetTopPx:  0,
	})
}

// setViewDate switches the active board partition. A failed fetch keeps the
// prior day on screen and reports on the status line.
func (m *Model) setViewDate(date string) {
	if err := m.session.SetViewDate(date); err != nil {
		m.status = fmt.Sprintf("load failed: %v", err)
		return
	}

	m.status = ""
	m.projector.SetViewedDate(m.session.ViewDate())
	if b := m.session.Board(); b != nil {
		if m.machine == nil {
			m.machine = drag.NewMachine(b)
		} else {
			m.machine.Rebind(b)
		}
	}
	m.targetIdx = 0
	m.queueSel = 0
	m.blockSel = 0
	m.slotIdx = 0
	m.applyClockTick()
}

// applyClockTick re-projects the now-line and services the scroll one-shots.
func (m *Model) applyClockTick() {
	payload, ok := m.session.Payload()
	if !ok {
		return
	}

	offset, offOk := m.projector.Offset(m.now, payload)
	viewportPx := m.grid.Height * geometry.SlotPx

	if offOk {
		if target, scroll := m.projector.AutoScrollTarget(offset, viewportPx); scroll {
			m.grid.SetYOffset(target / geometry.SlotPx)
		}
	}

	if target, scroll := m.projector.PendingScrollTarget(offset, offOk, viewportPx); scroll {
		m.grid.SetYOffset(target / geometry.SlotPx)
	}
}

func (m *Model) jumpToNow() {
	payload, ok := m.session.Payload()
	if !ok {
		return
	}
	today, ok := m.todayInOrgZone()
	if !ok {
		return
	}

	if today == m.session.ViewDate() {
		viewportPx := m.grid.Height * geometry.SlotPx
		if offset, offOk := m.projector.Offset(m.now, payload); offOk {
			m.grid.SetYOffset(nowline.ScrollCenter(offset, viewportPx) / geometry.SlotPx)
		} else {
			m.grid.SetYOffset(nowline.FallbackScrollPx / geometry.SlotPx)
		}
		return
	}

	m.setViewDate(today)
	m.projector.RequestJump()
}

func (m Model) todayInOrgZone() (string, bool) {
	payload, ok := m.session.Payload()
	if !ok {
		return "", false
	}
	loc, err := timeutil.LoadZone(payload.Org.Timezone)
	if err != nil {
		return "", false
	}
	return timeutil.CalendarDate(m.now, loc), true
}

func (m *Model) ensureSlotVisible() {
	row := m.slotIdx
	if row < m.grid.YOffset {
		m.grid.SetYOffset(row)
	}
	if row >= m.grid.YOffset+m.grid.Height {
		m.grid.SetYOffset(row - m.grid.Height + 1)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
