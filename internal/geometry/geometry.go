// Package geometry fixes the board's slot quantization and converts between
// pixel offsets, slot indices and minute offsets.
package geometry

import "math"

const (
	// SlotPx is the rendered height of one scheduling slot.
	SlotPx = 30

	// TripBlockPx is the rendered height of a trip block: 3 slots, i.e.
	// 45 minutes at 15-minute slots.
	TripBlockPx = 3 * SlotPx
)

func SlotIndexFromPixel(px float64) int {
	return int(math.Round(px / SlotPx))
}

func PixelFromSlotIndex(i int) int {
	return i * SlotPx
}

// GridHeight is the full pixel height of a vehicle column.
func GridHeight(slotsPerDayView int) int {
	return slotsPerDayView * SlotPx
}

// PixelFromMinutes projects a minute offset into grid pixels. Used for the
// now-line, which may sit between slot boundaries.
func PixelFromMinutes(minutes, slotMinutes int) float64 {
	if slotMinutes <= 0 {
		return 0
	}
	return float64(minutes) / float64(slotMinutes) * SlotPx
}

// Snap clamps a raw drop offset into [0, gridHeight-blockHeight] and forces
// it onto an exact slot multiple.
func Snap(rawTopPx float64, gridHeightPx, blockHeightPx int) (slotIndex, topPx int) {
	max := float64(gridHeightPx - blockHeightPx)
	if rawTopPx > max {
		rawTopPx = max
	}
	if rawTopPx < 0 {
		rawTopPx = 0
	}
	slotIndex = SlotIndexFromPixel(rawTopPx)
	return slotIndex, PixelFromSlotIndex(slotIndex)
}
