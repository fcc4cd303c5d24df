package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/tripboard/internal/board"
	"github.com/julianstephens/tripboard/internal/timeutil"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	payload, err := ctx.Provider.FetchDay("")
	if err != nil {
		fmt.Printf("❌ Day data reachable: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Day data reachable: OK (%s)\n", payload.Day.DateLocal)
	}

	if !hasError {
		loc, zerr := timeutil.LoadZone(payload.Org.Timezone)
		if zerr != nil {
			fmt.Printf("❌ Org timezone: FAIL\n   Error: %v\n", zerr)
			hasError = true
		} else {
			fmt.Printf("✓ Org timezone: OK (%s)\n", payload.Org.Timezone)

			if _, perr := timeutil.ParseDayStart(payload.Day.StartTimeLocal, loc); perr != nil {
				fmt.Printf("❌ Day start parseable: FAIL\n   Error: %v\n", perr)
				hasError = true
			} else if payload.Day.SlotMinutes <= 0 || payload.Day.SlotsPerDayView <= 0 {
				fmt.Printf("❌ Day geometry: FAIL\n   slot_minutes=%d slots_per_day_view=%d\n",
					payload.Day.SlotMinutes, payload.Day.SlotsPerDayView)
				hasError = true
			} else {
				fmt.Printf("✓ Day geometry: OK (%d slots × %d min)\n",
					payload.Day.SlotsPerDayView, payload.Day.SlotMinutes)
			}
		}

		fp, ferr := board.NewPartition(payload).Fingerprint()
		if ferr != nil {
			fmt.Printf("❌ Board fingerprint: FAIL\n   Error: %v\n", ferr)
			hasError = true
		} else {
			fmt.Printf("✓ Board fingerprint: OK (%016x)\n", fp)
		}
	}

	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock sanity: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock sanity: OK\n")
	}

	// Board edits assume one writer per data path; warn when another
	// tripboard is already running.
	if n, err := countSiblingProcesses(); err != nil {
		fmt.Printf("⚠ Concurrent instances: UNKNOWN\n   %v\n", err)
	} else if n > 0 {
		fmt.Printf("⚠ Concurrent instances: WARNING\n   %d other tripboard process(es) running; board state is single-writer\n", n)
	} else {
		fmt.Printf("✓ Concurrent instances: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation("UTC"); err != nil {
		return fmt.Errorf("zoneinfo database unavailable: %w", err)
	}
	return nil
}

func countSiblingProcesses() (int, error) {
	self := filepath.Base(os.Args[0])
	procs, err := ps.Processes()
	if err != nil {
		return 0, fmt.Errorf("failed to list processes: %w", err)
	}

	count := 0
	for _, p := range procs {
		if p.Pid() == os.Getpid() {
			continue
		}
		if strings.EqualFold(p.Executable(), self) {
			count++
		}
	}
	return count, nil
}
