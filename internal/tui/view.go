package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tripboard/internal/drag"
	"github.com/julianstephens/tripboard/internal/geometry"
	"github.com/julianstephens/tripboard/internal/models"
	"github.com/julianstephens/tripboard/internal/timeutil"
)

func (m Model) View() string {
	if m.state == stateGoDate && m.form != nil {
		return m.form.View()
	}

	payload, ok := m.session.Payload()
	if !ok {
		return "Loading day…"
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewQueues(),
		" ",
		m.viewGrid(payload),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(payload),
		body,
		m.help.View(m.keys),
	)
}

func (m Model) viewHeader(payload models.DayPayload) string {
	parts := []string{titleStyle.Render("Trip Engine")}

	if loc, err := timeutil.LoadZone(payload.Org.Timezone); err == nil {
		parts = append(parts,
			clockStyle.Render(timeutil.ClockLabel(m.now, loc)),
			dateStyle.Render(timeutil.FriendlyDate(m.now, loc)),
		)
	}

	parts = append(parts, dateStyle.Render("Schedule: "+payload.Day.DateLocal))

	if m.machine != nil {
		if active := m.machine.Active(); active != nil {
			parts = append(parts, draggingStyle.Render(" dragging "+active.PassengerShort+" "))
		}
	}

	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}

	return strings.Join(parts, "  ")
}

func (m Model) viewQueues() string {
	b := m.session.Board()
	if b == nil {
		return ""
	}

	dragging := m.machine != nil && m.machine.Dragging()

	var sections []string
	for qi, name := range models.AllQueues {
		hovered := m.targetIdx == qi

		title := queueTitle(name)
		if hovered {
			title = hoveredQueueTitleStyle.Render(" " + title + " ")
		} else {
			title = queueTitleStyle.Render(title)
		}
		sections = append(sections, title)

		trips := b.QueueContents(name)
		if len(trips) == 0 {
			sections = append(sections, dateStyle.Render("  (empty)"))
		}
		for ti, t := range trips {
			line := fmt.Sprintf("%s %s %s→%s",
				timeutil.ShortClock(t.PickupTimeLocal),
				padCell(t.PassengerShort, 14),
				timeutil.PlaceLabel(t.PickupCode, t.PickupLabel, t.PickupStreet, t.PickupCity),
				timeutil.PlaceLabel(t.DropoffCode, t.DropoffLabel, t.DropoffStreet, t.DropoffCity),
			)
			line = padCell(line, queuePaneWidth-2)
			if hovered && !dragging && ti == m.queueSel {
				sections = append(sections, selectedCardStyle.Render("  "+line))
			} else {
				sections = append(sections, cardStyle.Render("  "+line))
			}
		}
		sections = append(sections, "")
	}

	return lipgloss.NewStyle().Width(queuePaneWidth).Render(strings.Join(sections, "\n"))
}

func (m Model) viewGrid(payload models.DayPayload) string {
	b := m.session.Board()
	if b == nil {
		return ""
	}

	vehicles := b.Vehicles()
	slots := payload.Day.SlotsPerDayView

	loc, locErr := timeutil.LoadZone(payload.Org.Timezone)
	var dayStart time.Time
	if locErr == nil {
		dayStart, _ = timeutil.ParseDayStart(payload.Day.StartTimeLocal, loc)
	}

	nowRow := -1
	if offset, ok := m.projector.Offset(m.now, payload); ok {
		nowRow = int(offset) / geometry.SlotPx
	}

	var preview *drag.Preview
	if m.machine != nil {
		preview = m.machine.Preview()
	}
	dragging := m.machine != nil && m.machine.Dragging()

	type cell struct {
		text  string
		style lipgloss.Style
	}
	cols := make([]map[int]cell, len(vehicles))
	for i, v := range vehicles {
		cells := make(map[int]cell)
		for bi, blk := range b.AssignmentsForVehicle(v.VehicleID) {
			top := blk.TopPx / geometry.SlotPx
			span := blk.HeightPx / geometry.SlotPx
			style := blockStyle
			if !dragging && m.targetIdx == len(models.AllQueues)+i && bi == m.blockSel {
				style = selectedCardStyle
			}
			for r := 0; r < span; r++ {
				text := ""
				if r == 0 {
					text = timeutil.ShortClock(blk.Trip.PickupTimeLocal) + " " + blk.Trip.PassengerShort
				}
				cells[top+r] = cell{text: text, style: style}
			}
		}
		if preview != nil && preview.VehicleID == v.VehicleID {
			top := preview.TopPx / geometry.SlotPx
			for r := 0; r < preview.HeightPx/geometry.SlotPx; r++ {
				cells[top+r] = cell{text: "", style: previewStyle}
			}
		}
		cols[i] = cells
	}

	lines := make([]string, 0, slots)
	for row := 0; row < slots; row++ {
		axis := strings.Repeat(" ", axisWidth)
		switch {
		case row == nowRow:
			axis = nowLineStyle.Render(padCell("now ▶", axisWidth))
		case locErr == nil && row*payload.Day.SlotMinutes%60 == 0:
			axis = axisStyle.Render(padCell(timeutil.SlotClockLabel(dayStart, payload.Day.SlotMinutes, row, loc), axisWidth))
		}

		rendered := make([]string, 0, len(vehicles)+1)
		rendered = append(rendered, axis)
		for i := range vehicles {
			if c, ok := cols[i][row]; ok {
				rendered = append(rendered, c.style.Render(padCell(c.text, colWidth)))
			} else if row == nowRow {
				rendered = append(rendered, nowLineStyle.Render(strings.Repeat("─", colWidth)))
			} else {
				rendered = append(rendered, padCell("", colWidth))
			}
		}
		lines = append(lines, strings.Join(rendered, "│"))
	}

	vp := m.grid
	vp.SetContent(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewColumnHeaders(vehicles),
		vp.View(),
	)
}

func (m Model) viewColumnHeaders(vehicles []models.Vehicle) string {
	headers := []string{strings.Repeat(" ", axisWidth)}
	for i, v := range vehicles {
		label := "#" + v.UnitNumber
		if len(v.Drivers) > 0 {
			label += " " + v.Drivers[0]
		}
		label = padCell(label, colWidth)

		style := colHeaderStyle
		if v.IsOutOfService {
			style = oosColHeaderStyle
		}
		if m.targetIdx == len(models.AllQueues)+i {
			style = hoveredColHeaderStyle
		}
		headers = append(headers, style.Render(label))
	}
	return strings.Join(headers, "│")
}

func queueTitle(name models.QueueName) string {
	switch name {
	case models.QueueIncoming:
		return "Incoming"
	case models.QueueWillCall:
		return "Will-Call"
	default:
		return "Unassigned"
	}
}

func padCell(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
