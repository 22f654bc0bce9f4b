package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/indigo-web/cruiser/client"
	"github.com/indigo-web/cruiser/config"
	"github.com/indigo-web/cruiser/html"
	"github.com/indigo-web/cruiser/http"
	"github.com/indigo-web/cruiser/http/method"
	"github.com/indigo-web/cruiser/http/status"
	"github.com/indigo-web/cruiser/internal/address"
	"github.com/indigo-web/cruiser/resolver"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type args struct {
	Host      string   `arg:"positional,required" help:"host to request, optionally with a port"`
	Port      uint16   `arg:"-p,--port" default:"80" help:"port used unless the host carries one"`
	Path      string   `arg:"--path" default:"/" help:"request target"`
	Method    string   `arg:"-X,--method" default:"GET" help:"request method, only GET is supported"`
	Headers   []string `arg:"-H,--header,separate" help:"additional request header, as \"Key: Value\""`
	ConnectTo []string `arg:"--connect-to,separate" help:"connect to these IP addresses instead of resolving the host"`
	JSON      bool     `arg:"--json" help:"print the response as JSON"`
	Root      bool     `arg:"--root" help:"print the root HTML element"`
	Verbose   bool     `arg:"-v,--verbose" help:"log the exchange to stderr"`
}

func (args) Description() string {
	return "cruiser sends a single GET request over plain HTTP/1.1 and prints the response"
}

type jsonResponse struct {
	Protocol string            `json:"protocol"`
	Code     uint16            `json:"code"`
	Status   string            `json:"status"`
	Headers  map[string]string `json:"headers"`
	Body     string            `json:"body"`
}

func Main(a args, stdout io.Writer) error {
	logger, err := newLogger(a.Verbose)
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	defer func() {
		_ = logger.Sync()
	}()

	addr, err := address.Parse(a.Host, a.Port)
	if err != nil {
		return errors.Wrapf(err, "bad host %q", a.Host)
	}

	req := client.NewRequest(addr.Host).
		WithMethod(method.Parse(a.Method)).
		WithPort(addr.Port).
		WithTarget(a.Path)
	for _, header := range a.Headers {
		key, value, found := strings.Cut(header, ":")
		if !found {
			return errors.Errorf("bad header %q: expected \"Key: Value\"", header)
		}

		req.WithHeader(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	cfg := config.Default()
	cfg.NET.Port = a.Port

	c := client.New().Tune(cfg).Logger(logger)
	if len(a.ConnectTo) > 0 {
		c.Resolver(resolver.Static(a.ConnectTo...))
	}

	response, err := c.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s%s", addr, req.URI())
	}

	if a.JSON {
		if err = printJSON(stdout, response); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(stdout, string(response.Body))
		fmt.Fprintf(stdout, "Read %d bytes\n", len(response.Body))
		fmt.Fprintf(stdout, "Status: %d\n", response.Code)
	}

	if a.Root {
		root, err := html.Root(string(response.Body))
		if err != nil {
			return errors.Wrap(err, "reading root element")
		}

		fmt.Fprintln(stdout, root.Name)
		fmt.Fprintln(stdout, root.Attributes)
	}

	return nil
}

func printJSON(w io.Writer, response *http.Response) error {
	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(jsonResponse{
		Protocol: response.Protocol,
		Code:     uint16(response.Code),
		Status:   reason(response),
		Headers:  response.Headers.Map(),
		Body:     string(response.Body),
	})

	return errors.Wrap(err, "encoding response")
}

// reason falls back to the standard phrase when the server sent none.
func reason(response *http.Response) string {
	if len(response.Status) > 0 {
		return response.Status
	}

	return status.Text(response.Code)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build()
}

func main() {
	log.SetFlags(0)

	var a args
	arg.MustParse(&a)

	if err := Main(a, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
