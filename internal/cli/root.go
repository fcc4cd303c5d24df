package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/tripboard/internal/provider"
	"github.com/julianstephens/tripboard/internal/timeutil"
)

type Context struct {
	Provider provider.Provider
	DataPath string
}

// resolveDate turns a command-line date argument into a provider date:
// "today" becomes the empty string so the provider's default/current day is
// used, anything else must be YYYY-MM-DD.
func resolveDate(arg string) (string, error) {
	if arg == "" || arg == "today" {
		return "", nil
	}
	if _, err := time.Parse(timeutil.DateLayout, arg); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return arg, nil
}
