package commands

import (
	"fmt"
	"strings"

	"github.com/openlighting/ola-go/pkg/log"
)

// RunLog prints a protocol event log in human-readable form, optionally
// filtered by direction and function name.
func RunLog(path, direction, function string) error {
	reader, err := log.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer reader.Close()

	var filter log.Filter
	switch strings.ToLower(direction) {
	case "":
	case "in":
		d := log.DirectionIn
		filter.Direction = &d
	case "out":
		d := log.DirectionOut
		filter.Direction = &d
	default:
		return fmt.Errorf("unknown direction %q (in, out)", direction)
	}

	events, err := reader.ReadAll(&filter)
	if err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}

	shown := 0
	for _, e := range events {
		if function != "" && !strings.EqualFold(e.Function.String(), function) {
			continue
		}
		shown++
		line := fmt.Sprintf("%s %-3s %-12s %-9s",
			e.Timestamp.Format("15:04:05.000"), e.Direction, e.Category, e.Function)
		if e.XID != 0 {
			line += fmt.Sprintf(" xid=%d", e.XID)
		}
		if e.RemoteAddr != "" {
			line += " " + e.RemoteAddr
		}
		if e.Scopes != "" {
			line += fmt.Sprintf(" scopes=%q", e.Scopes)
		}
		if e.Size > 0 {
			line += fmt.Sprintf(" (%dB)", e.Size)
		}
		if e.Error != "" {
			line += " error=" + e.Error
		}
		fmt.Println(line)
	}

	fmt.Printf("%d events\n", shown)
	return nil
}
