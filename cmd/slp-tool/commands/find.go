package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openlighting/ola-go/pkg/slp/agent"
)

// RunFind searches for services of serviceType. An empty target multicasts
// the request; otherwise it is sent unicast to target:port.
func RunFind(serviceType, scopeList, target string, port int, wait time.Duration) error {
	scopes, err := parseScopeList(scopeList)
	if err != nil {
		return err
	}
	dst, err := resolveTarget(target, port)
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

	var entries []wireEntry
	if dst == nil {
		found, err := ua.Find(ctx, serviceType)
		if err != nil {
			return err
		}
		for _, e := range found {
			entries = append(entries, wireEntry{e.URL, e.Lifetime})
		}
	} else {
		found, err := ua.FindAt(ctx, serviceType, dst)
		if err != nil && !errors.Is(err, agent.ErrTimeout) {
			return err
		}
		for _, e := range found {
			entries = append(entries, wireEntry{e.URL, e.Lifetime})
		}
	}

	if len(entries) == 0 {
		fmt.Println("No services found.")
		return nil
	}

	fmt.Printf("%-60s %s\n", "URL", "LIFETIME")
	for _, e := range entries {
		fmt.Printf("%-60s %ds\n", e.url, e.lifetime)
	}
	return nil
}

type wireEntry struct {
	url      string
	lifetime uint16
}
