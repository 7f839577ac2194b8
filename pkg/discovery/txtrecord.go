package discovery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/openlighting/ola-go/pkg/slp/scope"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeDaemonTXT creates TXT records for daemon discovery. The scope list
// uses the same escaped form as SLP messages, so scope names containing
// commas survive the round trip.
func EncodeDaemonTXT(info *DaemonInfo) TXTRecordMap {
	txt := make(TXTRecordMap)

	// Required fields
	txt[TXTKeyInstanceID] = info.InstanceID
	txt[TXTKeyScopes] = info.Scopes.Escaped()

	// Optional fields
	if info.Version != "" {
		txt[TXTKeyVersion] = info.Version
	}
	if info.Universes > 0 {
		txt[TXTKeyUniverses] = strconv.Itoa(info.Universes)
	}

	return txt
}

// DecodeDaemonTXT parses TXT records from daemon discovery.
func DecodeDaemonTXT(txt TXTRecordMap) (*DaemonInfo, error) {
	info := &DaemonInfo{}

	// Parse instance ID (required)
	var ok bool
	info.InstanceID, ok = txt[TXTKeyInstanceID]
	if !ok || info.InstanceID == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyInstanceID)
	}

	// Parse scope list (required)
	scopesStr, ok := txt[TXTKeyScopes]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyScopes)
	}
	scopes, err := scope.Parse(scopesStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTXTRecord, err)
	}
	info.Scopes = scopes

	// Optional fields
	info.Version = txt[TXTKeyVersion]

	if uStr, ok := txt[TXTKeyUniverses]; ok {
		u, err := strconv.Atoi(uStr)
		if err == nil && u >= 0 {
			info.Universes = u
		}
	}

	return info, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to a slice of "key=value" strings.
// This format is commonly used by mDNS libraries.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}

// StringsToTXTRecords parses a slice of "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInstanceNameTooLong)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
