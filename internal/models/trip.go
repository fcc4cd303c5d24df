package models

type QueueName string

const (
	QueueIncoming   QueueName = "incoming"
	QueueUnassigned QueueName = "unassigned"
	QueueWillCall   QueueName = "willcall"
)

// AllQueues lists the three holding queues in display order.
var AllQueues = []QueueName{QueueIncoming, QueueUnassigned, QueueWillCall}

func (q QueueName) Valid() bool {
	switch q {
	case QueueIncoming, QueueUnassigned, QueueWillCall:
		return true
	}
	return false
}

// Trip is a single ride request. The board never mutates a trip's fields,
// only its placement (queue membership or grid assignment).
type Trip struct {
	TripID          string `json:"tripId"`
	PickupTimeLocal string `json:"pickupTimeLocal"` // "HH:MM" or a full timestamp
	PassengerShort  string `json:"passengerShort"`
	MobilityIcon    string `json:"mobilityIcon,omitempty"`

	// Saved-place short codes (optional)
	PickupCode  string `json:"pickupCode,omitempty"`
	DropoffCode string `json:"dropoffCode,omitempty"`

	PickupLabel  string `json:"pickupLabel,omitempty"`
	DropoffLabel string `json:"dropoffLabel,omitempty"`

	PickupCity    string `json:"pickupCity,omitempty"`
	DropoffCity   string `json:"dropoffCity,omitempty"`
	PickupStreet  string `json:"pickupStreet,omitempty"`
	DropoffStreet string `json:"dropoffStreet,omitempty"`

	PayeeAccount string `json:"payeeAccount,omitempty"`
	IsRoundTrip  bool   `json:"isRoundTrip,omitempty"`
}

// AssignedBlock is a trip pinned to a vehicle column at a slot-aligned
// vertical offset. TopPx is always SlotIndex * geometry.SlotPx.
type AssignedBlock struct {
	Trip      Trip   `json:"trip"`
	VehicleID string `json:"vehicleId"`
	SlotIndex int    `json:"slotIndex"`
	TopPx     int    `json:"topPx"`
	HeightPx  int    `json:"heightPx"`
}
