package commands

import (
	"context"
	"fmt"
	"time"
)

// RunDAs multicasts a directory agent discovery request and prints the
// adverts collected within wait.
func RunDAs(scopeList string, wait time.Duration) error {
	scopes, err := parseScopeList(scopeList)
	if err != nil {
		return err
	}

	ua, closeFn, err := newUserAgent(scopes)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	das, err := ua.DiscoverDirectoryAgents(ctx)
	if err != nil {
		return err
	}

	if len(das) == 0 {
		fmt.Println("No directory agents found.")
		return nil
	}

	fmt.Printf("%-50s %-30s %s\n", "URL", "SCOPES", "BOOT")
	for _, da := range das {
		fmt.Printf("%-50s %-30s %s\n", da.URL, da.Scopes,
			time.Unix(int64(da.BootTimestamp), 0).Format(time.RFC3339))
	}
	return nil
}
