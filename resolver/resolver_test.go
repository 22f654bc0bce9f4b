package resolver

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/indigo-web/cruiser/http"
	"github.com/stretchr/testify/require"
)

func newMockSystem(ips []net.IPAddr, err error) *System {
	return &System{
		lookup: func(context.Context, string) ([]net.IPAddr, error) {
			return ips, err
		},
	}
}

func TestSystem(t *testing.T) {
	t.Run("mixed families keep order", func(t *testing.T) {
		system := newMockSystem([]net.IPAddr{
			{IP: net.ParseIP("2001:db8::1")},
			{IP: net.IPv4(93, 184, 216, 34)},
			{IP: net.ParseIP("::1")},
			{IP: net.IP{10, 0, 0, 1}},
		}, nil)

		addrs, err := system.Resolve("example.com", 80)
		require.NoError(t, err)
		require.Equal(t, []Address{
			{IP: "2001:db8::1", Family: IPv6},
			{IP: "93.184.216.34", Family: IPv4},
			{IP: "::1", Family: IPv6},
			{IP: "10.0.0.1", Family: IPv4},
		}, addrs)
	})

	t.Run("lookup failure", func(t *testing.T) {
		cause := errors.New("no such host")
		_, err := newMockSystem(nil, cause).Resolve("nonexistent.invalid", 80)
		require.ErrorIs(t, err, http.ErrResolution)
		require.ErrorIs(t, err, cause)
	})

	t.Run("no records", func(t *testing.T) {
		_, err := newMockSystem(nil, nil).Resolve("example.com", 80)
		require.ErrorIs(t, err, http.ErrResolution)
	})

	t.Run("unrecognized family", func(t *testing.T) {
		system := newMockSystem([]net.IPAddr{
			{IP: net.IPv4(127, 0, 0, 1)},
			{IP: net.IP{1, 2, 3}},
		}, nil)

		addrs, err := system.Resolve("example.com", 80)
		require.ErrorIs(t, err, http.ErrResolution)
		require.Nil(t, addrs)
	})

	t.Run("empty host", func(t *testing.T) {
		_, err := NewSystem().Resolve("", 80)
		require.ErrorIs(t, err, http.ErrResolution)
	})

	t.Run("ip literal", func(t *testing.T) {
		addrs, err := NewSystem().Resolve("127.0.0.1", 80)
		require.NoError(t, err)
		require.Equal(t, []Address{{IP: "127.0.0.1", Family: IPv4}}, addrs)
	})
}

func TestStatic(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		addrs, err := Static("127.0.0.1", "::1").Resolve("whatever", 8080)
		require.NoError(t, err)
		require.Equal(t, []Address{
			{IP: "127.0.0.1", Family: IPv4},
			{IP: "::1", Family: IPv6},
		}, addrs)
	})

	t.Run("not an ip", func(t *testing.T) {
		_, err := Static("localhost").Resolve("whatever", 80)
		require.ErrorIs(t, err, http.ErrResolution)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Static().Resolve("whatever", 80)
		require.ErrorIs(t, err, http.ErrResolution)
	})
}

func TestFamily(t *testing.T) {
	require.Equal(t, "IPv4", IPv4.String())
	require.Equal(t, "IPv6", IPv6.String())
	require.Equal(t, "Family(7)", Family(7).String())
}
