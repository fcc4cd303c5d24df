package models

type Organization struct {
	OrgID    string `json:"orgId"`
	Timezone string `json:"timezone"` // IANA identifier, e.g. "America/Chicago"
}

// DayDescriptor defines the coordinate system all pixel math on the board is
// relative to. SlotsPerDayView * SlotMinutes is the viewable window length.
type DayDescriptor struct {
	DateLocal       string `json:"dateLocal"`      // YYYY-MM-DD in the org timezone
	StartTimeLocal  string `json:"startTimeLocal"` // wall-clock day start
	SlotMinutes     int    `json:"slotMinutes"`
	SlotsPerDayView int    `json:"slotsPerDayView"`
}

func (d DayDescriptor) ViewableMinutes() int {
	return d.SlotMinutes * d.SlotsPerDayView
}

// DayPayload is one scheduling day as delivered by a day data provider.
// The board treats it as read-only input.
type DayPayload struct {
	Org      Organization  `json:"org"`
	Day      DayDescriptor `json:"day"`
	Vehicles []Vehicle     `json:"vehicles"`

	IncomingRequests []Trip `json:"incomingRequests,omitempty"`
	UnassignedTrips  []Trip `json:"unassignedTrips,omitempty"`
	WillCallTrips    []Trip `json:"willCallTrips,omitempty"`
}
