package transport

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// freePort grabs an ephemeral UDP port and releases it for the test to use.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	port := l.LocalAddr().(*net.UDPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestServeDeliversDatagrams(t *testing.T) {
	port := freePort(t)
	conn, err := Listen(Config{Port: port, DisableMulticast: true})
	require.NoError(t, err)
	defer conn.Close()

	received := make(chan []byte, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- conn.Serve(ctx, func(pkt []byte, src *net.UDPAddr) {
			cp := make([]byte, len(pkt))
			copy(cp, pkt)
			received <- cp
		})
	}()

	client, err := net.DialUDP("udp4", nil,
		&net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Write([]byte("hello slp"))
	require.NoError(t, err)

	select {
	case pkt := <-received:
		require.Equal(t, []byte("hello slp"), pkt)
	case <-time.After(2 * time.Second):
		t.Fatal("datagram not delivered")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeReturnsClosedAfterClose(t *testing.T) {
	conn, err := Listen(Config{Port: freePort(t), DisableMulticast: true})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- conn.Serve(context.Background(), func([]byte, *net.UDPAddr) {})
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, conn.Close())

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Close")
	}
}

func TestListenEphemeralPort(t *testing.T) {
	conn, err := Listen(Config{DisableMulticast: true})
	require.NoError(t, err)
	defer conn.Close()

	require.NotZero(t, conn.LocalAddr().Port)
}

func TestWriteToRejectsOversizedDatagram(t *testing.T) {
	conn, err := Listen(Config{Port: freePort(t), DisableMulticast: true})
	require.NoError(t, err)
	defer conn.Close()

	big := make([]byte, MaxDatagramSize+1)
	err = conn.WriteTo(big, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9})
	require.Error(t, err)
	require.False(t, errors.Is(err, net.ErrClosed))
}
