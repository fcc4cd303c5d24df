// Package nowline projects the wall clock onto the board grid: a pixel
// offset for the live marker when the viewed day is the timezone-resolved
// current day, plus the one-shot auto-scroll and the jump-to-now deferral.
package nowline

import (
	"time"

	"github.com/julianstephens/tripboard/internal/geometry"
	"github.com/julianstephens/tripboard/internal/models"
	"github.com/julianstephens/tripboard/internal/timeutil"
)

// FallbackScrollPx is where jump-to-now lands when the projection for the
// switched-to day never becomes available: slot 48, ~12:00 at 15-minute
// slots.
const FallbackScrollPx = 48 * geometry.SlotPx

// jumpWaitTicks bounds how many clock ticks a deferred jump scroll waits for
// a projection before falling back.
const jumpWaitTicks = 2

// Projector derives the now-line offset and owns the scroll one-shots. One
// projector serves the whole session.
type Projector struct {
	viewedDate    string
	didAutoScroll bool
	pendingJump   int
}

func New() *Projector {
	return &Projector{}
}

// Offset returns the now-line pixel offset for the viewed payload, or false
// when not applicable: the viewed day is not today in the org timezone, the
// instant is outside the viewable window, or the payload's timezone or day
// start cannot be resolved.
func (p *Projector) Offset(now time.Time, payload models.DayPayload) (float64, bool) {
	loc, err := timeutil.LoadZone(payload.Org.Timezone)
	if err != nil {
		return 0, false
	}

	if timeutil.CalendarDate(now, loc) != payload.Day.DateLocal {
		return 0, false
	}

	start, err := timeutil.ParseDayStart(payload.Day.StartTimeLocal, loc)
	if err != nil {
		return 0, false
	}

	mins := timeutil.MinutesSinceDayStart(now, start, loc)
	if mins < 0 || mins > payload.Day.ViewableMinutes() {
		return 0, false
	}

	return geometry.PixelFromMinutes(mins, payload.Day.SlotMinutes), true
}

// SetViewedDate tracks which day the board shows. Switching days re-arms the
// auto-scroll one-shot.
func (p *Projector) SetViewedDate(date string) {
	if date == p.viewedDate {
		return
	}
	p.viewedDate = date
	p.didAutoScroll = false
}

// AutoScrollTarget fires at most once per viewed day, the first time an
// offset is available: the viewport top that centers the now-line. Later
// ticks reposition the line but do not scroll.
func (p *Projector) AutoScrollTarget(offset float64, viewportPx int) (int, bool) {
	if p.didAutoScroll {
		return 0, false
	}
	p.didAutoScroll = true
	return ScrollCenter(offset, viewportPx), true
}

// RequestJump arms a deferred scroll for a jump-to-now that had to switch
// days first. The scroll waits a bounded number of ticks for the new day's
// projection.
func (p *Projector) RequestJump() {
	p.pendingJump = jumpWaitTicks
}

// PendingScrollTarget is polled on each clock tick while a jump is armed.
// It resolves to the centered now-line scroll as soon as a projection
// exists, or to the fallback offset once the wait is exhausted.
func (p *Projector) PendingScrollTarget(offset float64, ok bool, viewportPx int) (int, bool) {
	if p.pendingJump == 0 {
		return 0, false
	}
	if ok {
		p.pendingJump = 0
		return ScrollCenter(offset, viewportPx), true
	}
	p.pendingJump--
	if p.pendingJump == 0 {
		return FallbackScrollPx, true
	}
	return 0, false
}

// ScrollCenter is the viewport top that puts the given offset at vertical
// center, floored at the grid top.
func ScrollCenter(offset float64, viewportPx int) int {
	target := int(offset) - viewportPx/2
	if target < 0 {
		target = 0
	}
	return target
}
