package discovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlighting/ola-go/pkg/slp/scope"
)

func TestDaemonTXTRoundTrip(t *testing.T) {
	info := &DaemonInfo{
		InstanceID: "2f1c9a44-9e1e-4a93-b7a1-0c5a4d6e8f00",
		Scopes:     scope.MustNew("default", "east-wing"),
		Version:    "0.10.9",
		Universes:  4,
	}

	txt := EncodeDaemonTXT(info)
	got, err := DecodeDaemonTXT(txt)
	require.NoError(t, err)

	assert.Equal(t, info.InstanceID, got.InstanceID)
	assert.True(t, got.Scopes.Equal(info.Scopes))
	assert.Equal(t, "0.10.9", got.Version)
	assert.Equal(t, 4, got.Universes)
}

func TestDaemonTXTEscapedScopes(t *testing.T) {
	// A scope containing a comma must survive the TXT round trip.
	info := &DaemonInfo{
		InstanceID: "abc",
		Scopes:     scope.MustNew("hall a,b", "default"),
	}

	txt := EncodeDaemonTXT(info)
	assert.Contains(t, txt[TXTKeyScopes], `\,`)

	got, err := DecodeDaemonTXT(txt)
	require.NoError(t, err)
	assert.True(t, got.Scopes.Contains("hall a,b"))
}

func TestDecodeDaemonTXTErrors(t *testing.T) {
	_, err := DecodeDaemonTXT(TXTRecordMap{TXTKeyScopes: "default"})
	assert.ErrorIs(t, err, ErrMissingRequired)

	_, err = DecodeDaemonTXT(TXTRecordMap{TXTKeyInstanceID: "abc"})
	assert.ErrorIs(t, err, ErrMissingRequired)

	_, err = DecodeDaemonTXT(TXTRecordMap{
		TXTKeyInstanceID: "abc",
		TXTKeyScopes:     `bad\`,
	})
	assert.ErrorIs(t, err, ErrInvalidTXTRecord)
}

func TestDecodeDaemonTXTIgnoresBadUniverseCount(t *testing.T) {
	got, err := DecodeDaemonTXT(TXTRecordMap{
		TXTKeyInstanceID: "abc",
		TXTKeyScopes:     "default",
		TXTKeyUniverses:  "many",
	})
	require.NoError(t, err)
	assert.Zero(t, got.Universes)
}

func TestTXTStringConversion(t *testing.T) {
	txt := TXTRecordMap{"id": "abc", "flag": ""}
	strs := TXTRecordsToStrings(txt)
	assert.Len(t, strs, 2)

	back := StringsToTXTRecords(strs)
	assert.Equal(t, "abc", back["id"])
	_, ok := back["flag"]
	assert.True(t, ok)
}

func TestValidateInstanceName(t *testing.T) {
	assert.NoError(t, ValidateInstanceName("olad on lightdesk"))
	assert.Error(t, ValidateInstanceName(""))
	assert.ErrorIs(t, ValidateInstanceName(strings.Repeat("x", MaxInstanceNameLen+1)), ErrInstanceNameTooLong)
}
