package resolver

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/indigo-web/cruiser/http"
)

type Family uint8

const (
	IPv4 Family = iota + 1
	IPv6
)

func (f Family) String() string {
	switch f {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	}

	return "Family(" + strconv.Itoa(int(f)) + ")"
}

// Address is a textual IP literal together with the family it was resolved under.
type Address struct {
	IP     string
	Family Family
}

func (a Address) String() string {
	return a.IP
}

// Resolver turns a hostname into an ordered list of addresses. The order is significant:
// callers try the addresses one by one, as they were returned.
type Resolver interface {
	Resolve(host string, port uint16) ([]Address, error)
}

// Func adapts a plain function to the Resolver interface.
type Func func(host string, port uint16) ([]Address, error)

func (f Func) Resolve(host string, port uint16) ([]Address, error) {
	return f(host, port)
}

type lookupFunc func(ctx context.Context, host string) ([]net.IPAddr, error)

// System resolves hostnames via the operating system (or the pure Go) resolver, whichever the
// net package picks. The port does not influence the lookup.
type System struct {
	lookup lookupFunc
}

func NewSystem() *System {
	return &System{
		lookup: net.DefaultResolver.LookupIPAddr,
	}
}

func (s *System) Resolve(host string, port uint16) ([]Address, error) {
	if len(host) == 0 {
		return nil, http.ErrResolution.Withf("cannot resolve an empty hostname")
	}

	ips, err := s.lookup(context.Background(), host)
	if err != nil {
		return nil, http.ErrResolution.Withf("cannot lookup %s", hostport(host, port)).Wrap(err)
	}

	if len(ips) == 0 {
		return nil, http.ErrResolution.Withf("no addresses found for %s", hostport(host, port))
	}

	addrs := make([]Address, 0, len(ips))
	for _, ip := range ips {
		addr, err := Classify(ip.IP)
		if err != nil {
			return nil, err
		}

		addrs = append(addrs, addr)
	}

	return addrs, nil
}

// Classify converts the IP into an Address. Anything that is neither IPv4 nor IPv6 is rejected
// instead of being skipped.
func Classify(ip net.IP) (Address, error) {
	switch len(ip) {
	case net.IPv4len:
		return Address{IP: ip.String(), Family: IPv4}, nil
	case net.IPv6len:
		if ip.To4() != nil {
			return Address{IP: ip.String(), Family: IPv4}, nil
		}

		return Address{IP: ip.String(), Family: IPv6}, nil
	}

	return Address{}, http.ErrResolution.Withf("unrecognized address family (%d-byte address)", len(ip))
}

// Static always resolves into the same list of IP literals, no matter which host is asked for.
func Static(ips ...string) Resolver {
	return Func(func(string, uint16) ([]Address, error) {
		if len(ips) == 0 {
			return nil, http.ErrResolution.Withf("no addresses configured")
		}

		addrs := make([]Address, 0, len(ips))
		for _, literal := range ips {
			ip := net.ParseIP(literal)
			if ip == nil {
				return nil, http.ErrResolution.Withf("%q is not an IP address", literal)
			}

			addr, err := Classify(ip)
			if err != nil {
				return nil, err
			}

			addrs = append(addrs, addr)
		}

		return addrs, nil
	})
}

func hostport(host string, port uint16) string {
	return fmt.Sprintf("%s:%d", host, port)
}
