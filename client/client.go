package client

import (
	"github.com/indigo-web/cruiser/config"
	"github.com/indigo-web/cruiser/http"
	"github.com/indigo-web/cruiser/http/method"
	"github.com/indigo-web/cruiser/internal/address"
	"github.com/indigo-web/cruiser/internal/protocol/http1"
	"github.com/indigo-web/cruiser/kv"
	"github.com/indigo-web/cruiser/resolver"
	"github.com/indigo-web/cruiser/transport"
	"go.uber.org/zap"
)

// defaultHTTPPort is omitted from the Host header.
const defaultHTTPPort = 80

// Client performs requests, each one over a separate connection that is closed as soon as
// the response is read. It holds no per-request state, so Do may be called concurrently.
type Client struct {
	cfg      *config.Config
	resolver resolver.Resolver
	dial     transport.DialFunc
	logger   *zap.Logger
}

// New returns a new client with default config, system resolver and no logging.
func New() *Client {
	return &Client{
		cfg:      config.Default(),
		resolver: resolver.NewSystem(),
		dial:     transport.DefaultDial,
		logger:   zap.NewNop(),
	}
}

// Tune replaces the default config.
func (c *Client) Tune(cfg *config.Config) *Client {
	c.cfg = cfg
	return c
}

func (c *Client) Resolver(r resolver.Resolver) *Client {
	c.resolver = r
	return c
}

func (c *Client) Dialer(dial transport.DialFunc) *Client {
	c.dial = dial
	return c
}

func (c *Client) Logger(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c.logger = logger
	return c
}

// Get requests the target from the host. The host may carry a port, otherwise the configured
// one is used.
func (c *Client) Get(host, target string) (*http.Response, error) {
	addr, err := address.Parse(host, c.cfg.NET.Port)
	if err != nil {
		return nil, http.ErrResolution.Withf("bad host %q", host).Wrap(err)
	}

	return c.Do(NewRequest(addr.Host).WithPort(addr.Port).WithTarget(target))
}

// Do sends the request and reads the response. The connection is closed on every return path.
func (c *Client) Do(req *Request) (*http.Response, error) {
	if _, ok := method.Name(req.Method); !ok {
		return nil, http.ErrUnsupportedMethod.Withf("cannot send %s: only GET is supported", req.Method)
	}

	port := req.Port
	if port == 0 {
		port = c.cfg.NET.Port
	}

	logger := c.logger.With(zap.String("host", req.Host), zap.Uint16("port", port))

	conn, err := transport.Dial(c.resolver, c.dial, req.Host, port, c.cfg.NET, logger)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := conn.Close(); err != nil {
			logger.Debug("closing connection", zap.Error(err))
		}
	}()

	headers := c.headers(req, port)
	uri := req.URI()
	if err = http1.WriteRequest(conn, req.Method, uri, headers); err != nil {
		return nil, err
	}

	logger.Debug("request sent",
		zap.Stringer("method", req.Method),
		zap.String("target", uri),
		zap.Int("headers", headers.Len()),
	)

	response, err := http1.NewReader(conn, c.cfg, logger).Read()
	if err != nil {
		return nil, err
	}

	logger.Debug("response received",
		zap.Uint16("code", uint16(response.Code)),
		zap.Int("body", len(response.Body)),
	)

	return response, nil
}

// headers merges the default headers with the request ones, the latter winning no matter
// the case of names. Host is added unless set explicitly in any case.
func (c *Client) headers(req *Request, port uint16) *kv.Storage {
	headers := kv.NewFromMap(c.cfg.Headers.Default)
	if req.Headers != nil {
		for key := range req.Headers.Iter() {
			headers.DeleteFold(key)
		}

		headers.Merge(req.Headers)
	}

	if !headers.HasFold("Host") {
		addr := address.Address{Host: req.Host, Port: port}
		headers.Set("Host", addr.HostHeader(defaultHTTPPort))
	}

	return headers
}
