package cli

import (
	"fmt"

	"github.com/julianstephens/tripboard/internal/daycache"
	"github.com/julianstephens/tripboard/internal/models"
	"github.com/julianstephens/tripboard/internal/timeutil"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	session := daycache.NewSession(ctx.Provider)
	if err := session.SetViewDate(date); err != nil {
		return err
	}

	payload, _ := session.Payload()
	board := session.Board()

	fmt.Printf("Board for %s (%s, %s)\n\n", payload.Day.DateLocal, payload.Org.OrgID, payload.Org.Timezone)

	for _, name := range models.AllQueues {
		trips := board.QueueContents(name)
		fmt.Printf("%s (%d):\n", queueTitle(name), len(trips))
		if len(trips) == 0 {
			fmt.Println("  (empty)")
		}
		for _, t := range trips {
			fmt.Printf("  %s  %-20s  %s → %s\n",
				timeutil.ShortClock(t.PickupTimeLocal),
				t.PassengerShort,
				timeutil.PlaceLabel(t.PickupCode, t.PickupLabel, t.PickupStreet, t.PickupCity),
				timeutil.PlaceLabel(t.DropoffCode, t.DropoffLabel, t.DropoffStreet, t.DropoffCity),
			)
		}
		fmt.Println()
	}

	fmt.Println("Vehicles:")
	for _, v := range board.Vehicles() {
		status := "in service"
		if v.IsOutOfService {
			status = "OUT OF SERVICE"
		}
		fmt.Printf("  #%-6s %s (%d assigned)\n", v.UnitNumber, status, len(board.AssignmentsForVehicle(v.VehicleID)))
	}

	return nil
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
