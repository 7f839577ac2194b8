package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openlighting/ola-go/pkg/discovery"
)

// RunBrowse browses for OLA daemons over mDNS for the given duration.
func RunBrowse(wait time.Duration) error {
	browser := discovery.NewBrowser(discovery.BrowserConfig{BrowseTimeout: wait})

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	results, err := browser.Browse(ctx)
	if err != nil {
		return err
	}

	found := 0
	for svc := range results {
		found++
		fmt.Printf("%s\n", svc.InstanceName)
		fmt.Printf("  id:        %s\n", svc.InstanceID)
		fmt.Printf("  addresses: %s (port %d)\n", strings.Join(svc.Addresses, ", "), svc.Port)
		fmt.Printf("  scopes:    %s\n", svc.Scopes)
		if svc.Version != "" {
			fmt.Printf("  version:   %s\n", svc.Version)
		}
		fmt.Printf("  universes: %d\n", svc.Universes)
	}

	if found == 0 {
		fmt.Println("No daemons found.")
	}
	return nil
}
