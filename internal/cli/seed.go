package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tripboard/internal/models"
	"github.com/julianstephens/tripboard/internal/timeutil"
)

type SeedCmd struct {
	Date     string `help:"Schedule date for the demo day (YYYY-MM-DD)." default:""`
	Timezone string `help:"Organization timezone." default:"America/Chicago"`
}

func (c *SeedCmd) Run(ctx *Context) error {
	loc, err := timeutil.LoadZone(c.Timezone)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = timeutil.CalendarDate(time.Now(), loc)
	} else if _, err := time.Parse(timeutil.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
	}

	payload := demoPayload(date, c.Timezone)
	if err := ctx.Provider.Seed(payload); err != nil {
		return err
	}

	fmt.Printf("Seeded demo day %s (%s) at %s\n", date, c.Timezone, ctx.DataPath)
	return nil
}

func demoPayload(date, timezone string) models.DayPayload {
	trip := func(pickup, passenger, pickupCode, dropCode string) models.Trip {
		return models.Trip{
			TripID:          uuid.New().String(),
			PickupTimeLocal: pickup,
			PassengerShort:  passenger,
			PickupCode:      pickupCode,
			DropoffCode:     dropCode,
		}
	}

	return models.DayPayload{
		Org: models.Organization{OrgID: "demo-org", Timezone: timezone},
		Day: models.DayDescriptor{
			DateLocal:       date,
			StartTimeLocal:  date + "T00:00:00",
			SlotMinutes:     15,
			SlotsPerDayView: 96, // full day at 15-minute slots
		},
		Vehicles: []models.Vehicle{
			{VehicleID: uuid.New().String(), UnitNumber: "101", DisplayOrder: 1, Drivers: []string{"A. Ruiz"}, Capabilities: []string{"wheelchair"}},
			{VehicleID: uuid.New().String(), UnitNumber: "102", DisplayOrder: 2, Drivers: []string{"M. Chen"}, Capabilities: []string{"ambulatory"}},
			{VehicleID: uuid.New().String(), UnitNumber: "103", DisplayOrder: 3, Drivers: []string{"D. Okafor"}, Capabilities: []string{"stretcher"}},
			{VehicleID: uuid.New().String(), UnitNumber: "104", DisplayOrder: 4, IsOutOfService: true, Drivers: nil, Capabilities: []string{"ambulatory"}},
		},
		IncomingRequests: []models.Trip{
			trip("08:15", "J. Smith", "MCNR", "HMDT"),
			trip("09:30", "L. Vance", "", "STLK"),
		},
		UnassignedTrips: []models.Trip{
			trip("07:45", "P. Gupta", "HMDT", "MCNR"),
			trip("10:00", "R. Bell", "", ""),
			trip("13:30", "T. Nakamura", "STLK", ""),
		},
		WillCallTrips: []models.Trip{
			trip("16:00", "C. Ademola", "", "MCNR"),
		},
	}
}
