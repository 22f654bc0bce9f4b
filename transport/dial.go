package transport

import (
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/indigo-web/cruiser/config"
	"github.com/indigo-web/cruiser/http"
	"github.com/indigo-web/cruiser/resolver"
	"go.uber.org/zap"
)

// DialFunc opens a stream connection to the address. Zero timeout means no timeout.
type DialFunc func(network, address string, timeout time.Duration) (net.Conn, error)

func DefaultDial(network, address string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, address, timeout)
}

// Dial resolves the host and tries every returned address in the resolver's order. The first
// address accepting the connection wins. If none does, http.ErrConnect is returned carrying
// every failure encountered.
func Dial(
	r resolver.Resolver, dial DialFunc, host string, port uint16, cfg config.NET, logger *zap.Logger,
) (*Connection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	addrs, err := r.Resolve(host, port)
	if err != nil {
		return nil, err
	}

	if len(addrs) == 0 {
		return nil, http.ErrResolution.Withf("no addresses found for %s", host)
	}

	errs := make([]error, 0, len(addrs))

	for _, addr := range addrs {
		target := net.JoinHostPort(addr.IP, strconv.Itoa(int(port)))
		conn, err := dial(network(addr.Family), target, cfg.DialTimeout)
		if err != nil {
			logger.Debug("connect attempt failed",
				zap.String("host", host),
				zap.String("address", target),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}

		logger.Debug("connected",
			zap.String("host", host),
			zap.String("address", target),
			zap.Stringer("family", addr.Family),
		)

		return NewConnection(NewClient(conn, cfg), cfg.MaxLineSize), nil
	}

	return nil, http.ErrConnect.
		Withf("cannot connect to %s (%d addresses tried)", host, len(addrs)).
		Wrap(errors.Join(errs...))
}

func network(family resolver.Family) string {
	switch family {
	case resolver.IPv4:
		return "tcp4"
	case resolver.IPv6:
		return "tcp6"
	default:
		return "tcp"
	}
}
