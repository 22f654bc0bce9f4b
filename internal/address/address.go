package address

import (
	"errors"
	"net"
	"strconv"
	"strings"
)

// Address is a host as typed by a user, split into the hostname and the port.
type Address struct {
	Host string
	Port uint16
}

// Parse accepts `host`, `host:port`, `[ipv6]` and `[ipv6]:port`. The default port is used
// whenever the port is omitted.
func Parse(addr string, defaultPort uint16) (Address, error) {
	if len(addr) == 0 {
		return Address{}, errors.New("empty address")
	}

	if !hasPort(addr) {
		return Address{
			Host: strings.Trim(addr, "[]"),
			Port: defaultPort,
		}, nil
	}

	host, rawPort, err := net.SplitHostPort(addr)
	if err != nil {
		return Address{}, err
	}

	if len(host) == 0 {
		return Address{}, errors.New("no host given")
	}

	port, err := strconv.ParseUint(rawPort, 10, 16)
	if err != nil {
		return Address{}, errors.New("bad port")
	}

	return Address{
		Host: host,
		Port: uint16(port),
	}, nil
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(int(a.Port)))
}

// HostHeader returns the value of the Host header. The port is omitted when it is the
// default one.
func (a Address) HostHeader(defaultPort uint16) string {
	host := a.Host
	if strings.IndexByte(host, ':') != -1 {
		host = "[" + host + "]"
	}

	if a.Port == defaultPort {
		return host
	}

	return host + ":" + strconv.Itoa(int(a.Port))
}

func hasPort(addr string) bool {
	if addr[0] == '[' {
		return strings.Contains(addr, "]:")
	}

	return strings.Count(addr, ":") == 1
}
