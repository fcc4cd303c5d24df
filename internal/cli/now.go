package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/tripboard/internal/daycache"
	"github.com/julianstephens/tripboard/internal/nowline"
	"github.com/julianstephens/tripboard/internal/timeutil"
)

// NowCmd prints the live now-line projection for the provider's current day.
type NowCmd struct{}

func (c *NowCmd) Run(ctx *Context) error {
	session := daycache.NewSession(ctx.Provider)
	if err := session.SetViewDate(""); err != nil {
		return err
	}

	payload, _ := session.Payload()
	loc, err := timeutil.LoadZone(payload.Org.Timezone)
	if err != nil {
		return err
	}

	now := time.Now()
	fmt.Printf("Org time:   %s, %s\n", timeutil.ClockLabel(now, loc), timeutil.FriendlyDate(now, loc))
	fmt.Printf("Viewed day: %s\n", payload.Day.DateLocal)

	offset, ok := nowline.New().Offset(now, payload)
	if !ok {
		fmt.Println("Now-line:   not applicable (not viewing today, or outside the viewable window)")
		return nil
	}

	fmt.Printf("Now-line:   %.1fpx from day start\n", offset)
	return nil
}
