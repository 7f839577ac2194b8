package agent

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlighting/ola-go/pkg/slp/scope"
	"github.com/openlighting/ola-go/pkg/slp/transport"
	"github.com/openlighting/ola-go/pkg/slp/wire"
)

// startAgent runs a service agent on an ephemeral loopback port and returns
// its address.
func startAgent(t *testing.T, sa *ServiceAgent) *net.UDPAddr {
	t.Helper()

	l, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	port := l.LocalAddr().(*net.UDPAddr).Port
	require.NoError(t, l.Close())

	conn, err := transport.Listen(transport.Config{Port: port, DisableMulticast: true})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sa.Serve(ctx, conn)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("agent did not stop")
		}
	})

	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port}
}

func newUA(t *testing.T, scopes ...string) *UserAgent {
	t.Helper()
	conn, err := transport.Listen(transport.Config{
		Port:             freeUAPort(t),
		DisableMulticast: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewUserAgent(conn, scope.MustNew(scopes...), nil)
}

func freeUAPort(t *testing.T) int {
	t.Helper()
	l, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	port := l.LocalAddr().(*net.UDPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestRegisterFindDeregister(t *testing.T) {
	sa := NewServiceAgent(ServiceAgentConfig{Scopes: scope.MustNew("default", "stage-left")})
	addr := startAgent(t, sa)
	ua := newUA(t, "stage-left")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Register a lighting controller.
	err := ua.Register(ctx, &wire.ServiceRegistration{
		Entry:       wire.URLEntry{Lifetime: 120, URL: "service:lighting-control://10.0.0.5:9090"},
		ServiceType: "service:lighting-control",
		Scopes:      scope.MustNew("stage-left"),
	}, addr)
	require.NoError(t, err)

	// Find it.
	entries, err := ua.FindAt(ctx, "service:lighting-control", addr)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "service:lighting-control://10.0.0.5:9090", entries[0].URL)

	// Withdraw it.
	err = ua.Deregister(ctx, &wire.ServiceDeregistration{
		Scopes: scope.MustNew("stage-left"),
		Entry:  wire.URLEntry{URL: "service:lighting-control://10.0.0.5:9090"},
	}, addr)
	require.NoError(t, err)

	entries, err = ua.FindAt(ctx, "service:lighting-control", addr)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScopeMismatchSurfacesStatus(t *testing.T) {
	sa := NewServiceAgent(ServiceAgentConfig{Scopes: scope.MustNew("east-wing")})
	addr := startAgent(t, sa)
	ua := newUA(t, "west-wing")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := ua.FindAt(ctx, "service:lighting-control", addr)
	var serr wire.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, wire.StatusScopeNotSupported, serr.Code)

	err = ua.Register(ctx, &wire.ServiceRegistration{
		Entry:       wire.URLEntry{Lifetime: 120, URL: "service:lighting-control://10.0.0.5"},
		ServiceType: "service:lighting-control",
		Scopes:      scope.MustNew("west-wing"),
	}, addr)
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, wire.StatusScopeNotSupported, serr.Code)
}

func TestFindTimeoutReturnsNothing(t *testing.T) {
	ua := newUA(t, "default")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// Nobody is listening on the target port.
	entries, err := ua.FindAt(ctx, "service:lighting-control",
		&net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: freeUAPort(t)})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, entries)
}
