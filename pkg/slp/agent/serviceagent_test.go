package agent

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlighting/ola-go/pkg/slp/scope"
	"github.com/openlighting/ola-go/pkg/slp/wire"
)

var testSrc = &net.UDPAddr{IP: net.IPv4(192, 168, 1, 50), Port: 52000}

func newTestAgent(t *testing.T, scopes ...string) *ServiceAgent {
	t.Helper()
	return NewServiceAgent(ServiceAgentConfig{
		Scopes:    scope.MustNew(scopes...),
		URL:       "service:service-agent://10.0.0.9",
		Addresses: []string{"10.0.0.9"},
	})
}

// handle marshals msg, feeds it to the agent and decodes the reply.
func handle(t *testing.T, a *ServiceAgent, h wire.Header, msg wire.Message) wire.Message {
	t.Helper()
	pkt, err := wire.Marshal(h, msg)
	require.NoError(t, err)
	resp := a.HandleDatagram(pkt, testSrc)
	if resp == nil {
		return nil
	}
	gotH, gotM, err := wire.Unmarshal(resp)
	require.NoError(t, err)
	assert.Equal(t, h.XID, gotH.XID, "reply must reuse the request XID")
	return gotM
}

func register(t *testing.T, a *ServiceAgent, url string, scopes ...string) {
	t.Helper()
	ack := handle(t, a, wire.Header{XID: 100, Flags: wire.FlagFresh},
		newReg(url, 300, scopes...))
	require.IsType(t, &wire.ServiceAck{}, ack)
	require.Equal(t, wire.StatusOK, ack.(*wire.ServiceAck).Status)
}

func TestRequestReplyMatching(t *testing.T) {
	a := newTestAgent(t, "default", "east-wing")
	register(t, a, "service:lighting-control://10.0.0.5", "east-wing")

	reply := handle(t, a, wire.Header{XID: 1}, &wire.ServiceRequest{
		ServiceType: "service:lighting-control",
		Scopes:      scope.MustNew("east-wing", "west-wing"),
	})
	require.IsType(t, &wire.ServiceReply{}, reply)
	r := reply.(*wire.ServiceReply)
	assert.Equal(t, wire.StatusOK, r.Status)
	require.Len(t, r.URLEntries, 1)
	assert.Equal(t, "service:lighting-control://10.0.0.5", r.URLEntries[0].URL)
}

func TestScopeGate(t *testing.T) {
	a := newTestAgent(t, "default")

	req := &wire.ServiceRequest{
		ServiceType: "service:lighting-control",
		Scopes:      scope.MustNew("west-wing"),
	}

	t.Run("UnicastMissGetsExplicitError", func(t *testing.T) {
		reply := handle(t, a, wire.Header{XID: 2}, req)
		require.IsType(t, &wire.ServiceReply{}, reply)
		assert.Equal(t, wire.StatusScopeNotSupported, reply.(*wire.ServiceReply).Status)
	})

	t.Run("MulticastMissIsSilent", func(t *testing.T) {
		reply := handle(t, a, wire.Header{XID: 3, Flags: wire.FlagMulticast}, req)
		assert.Nil(t, reply)
	})

	t.Run("EmptyRequestScopesMeanDefault", func(t *testing.T) {
		reply := handle(t, a, wire.Header{XID: 4}, &wire.ServiceRequest{
			ServiceType: "service:lighting-control",
		})
		require.IsType(t, &wire.ServiceReply{}, reply)
		assert.Equal(t, wire.StatusOK, reply.(*wire.ServiceReply).Status)
	})
}

func TestMulticastNoMatchesIsSilent(t *testing.T) {
	a := newTestAgent(t, "default")
	reply := handle(t, a, wire.Header{XID: 5, Flags: wire.FlagMulticast}, &wire.ServiceRequest{
		ServiceType: "service:lighting-control",
		Scopes:      scope.MustNew("default"),
	})
	assert.Nil(t, reply)
}

func TestPreviousResponderSuppression(t *testing.T) {
	a := newTestAgent(t, "default")
	register(t, a, "service:lighting-control://10.0.0.5", "default")

	reply := handle(t, a, wire.Header{XID: 6}, &wire.ServiceRequest{
		PreviousResponders: []string{"10.0.0.9"},
		ServiceType:        "service:lighting-control",
		Scopes:             scope.MustNew("default"),
	})
	assert.Nil(t, reply)
}

func TestServiceAgentDiscovery(t *testing.T) {
	a := newTestAgent(t, "default", "east-wing")

	reply := handle(t, a, wire.Header{XID: 7}, &wire.ServiceRequest{
		ServiceType: ServiceTypeServiceAgent,
		Scopes:      scope.MustNew("default"),
	})
	require.IsType(t, &wire.SAAdvert{}, reply)
	sa := reply.(*wire.SAAdvert)
	assert.Equal(t, "service:service-agent://10.0.0.9", sa.URL)
	assert.True(t, sa.Scopes.Equal(scope.MustNew("default", "east-wing")))
}

func TestDARequestNotAnswered(t *testing.T) {
	a := newTestAgent(t, "default")
	reply := handle(t, a, wire.Header{XID: 8}, &wire.ServiceRequest{
		ServiceType: ServiceTypeDirectoryAgent,
		Scopes:      scope.MustNew("default"),
	})
	assert.Nil(t, reply)
}

func TestRegistrationScopeCheck(t *testing.T) {
	a := newTestAgent(t, "default")

	ack := handle(t, a, wire.Header{XID: 9, Flags: wire.FlagFresh},
		newReg("service:lighting-control://10.0.0.5", 300, "west-wing"))
	require.IsType(t, &wire.ServiceAck{}, ack)
	assert.Equal(t, wire.StatusScopeNotSupported, ack.(*wire.ServiceAck).Status)
}

func TestDeregistrationStatuses(t *testing.T) {
	a := newTestAgent(t, "default", "east-wing")
	register(t, a, "service:lighting-control://10.0.0.5", "default", "east-wing")

	t.Run("PartialWithdrawal", func(t *testing.T) {
		ack := handle(t, a, wire.Header{XID: 10}, &wire.ServiceDeregistration{
			Scopes: scope.MustNew("east-wing"),
			Entry:  wire.URLEntry{URL: "service:lighting-control://10.0.0.5"},
		})
		require.IsType(t, &wire.ServiceAck{}, ack)
		assert.Equal(t, wire.StatusOK, ack.(*wire.ServiceAck).Status)

		reg, ok := a.Registrations().Get("service:lighting-control://10.0.0.5")
		require.True(t, ok)
		assert.True(t, reg.Scopes.Equal(scope.MustNew("default")))
	})

	t.Run("UnknownURL", func(t *testing.T) {
		ack := handle(t, a, wire.Header{XID: 11}, &wire.ServiceDeregistration{
			Scopes: scope.MustNew("default"),
			Entry:  wire.URLEntry{URL: "service:lighting-control://nope"},
		})
		require.IsType(t, &wire.ServiceAck{}, ack)
		assert.Equal(t, wire.StatusInvalidRegistration, ack.(*wire.ServiceAck).Status)
	})
}

func TestDAAdvertFeedsCache(t *testing.T) {
	a := newTestAgent(t, "default")

	reply := handle(t, a, wire.Header{XID: 12},
		advert("service:directory-agent://10.0.0.1", 500, "default"))
	assert.Nil(t, reply)

	da, ok := a.DirectoryAgents().Select(scope.MustNew("default"))
	require.True(t, ok)
	assert.Equal(t, "service:directory-agent://10.0.0.1", da.URL)
}

func TestGarbageDatagramIgnored(t *testing.T) {
	a := newTestAgent(t, "default")
	assert.Nil(t, a.HandleDatagram([]byte{0x01, 0x02, 0x03}, testSrc))
}
