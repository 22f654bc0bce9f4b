package http1

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/cruiser/config"
	"github.com/indigo-web/cruiser/http"
	"github.com/indigo-web/cruiser/http/status"
	"github.com/indigo-web/cruiser/internal/httptest"
	"github.com/indigo-web/cruiser/kv"
	"github.com/indigo-web/cruiser/transport"
	"github.com/indigo-web/cruiser/transport/dummy"
	"github.com/stretchr/testify/require"
)

func readResponse(cfg *config.Config, pieces ...string) (*http.Response, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	conn := transport.NewConnection(dummy.NewMockClientString(pieces...), cfg.NET.MaxLineSize)
	return NewReader(conn, cfg, nil).Read()
}

func compareResponse(t *testing.T, want, got *http.Response) {
	require.Equal(t, want.Protocol, got.Protocol)
	require.Equal(t, int(want.Code), int(got.Code))
	require.Equal(t, want.Status, got.Status)
	require.Equal(t, want.Headers.Expose(), got.Headers.Expose())
	require.Equal(t, string(want.Body), string(got.Body))
}

func TestReader(t *testing.T) {
	t.Run("end to end", func(t *testing.T) {
		raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n0\r\n\r\n"
		response, err := readResponse(nil, raw)
		require.NoError(t, err)
		compareResponse(t, &http.Response{
			Protocol: "HTTP/1.1",
			Code:     status.OK,
			Status:   "OK",
			Headers:  kv.New().Set("Transfer-Encoding", "chunked"),
			Body:     []byte("hello"),
		}, response)
	})

	t.Run("delivered in small pieces", func(t *testing.T) {
		body := strings.Repeat("<p>hello</p>", 50)
		raw := httptest.ChunkedResponse(
			404, "Not Found", body, 64, "Content-Type: text/html", "Server: test",
		)

		for _, n := range []int{1, 2, 7, 64} {
			response, err := readResponse(nil, httptest.Split(raw, n)...)
			require.NoError(t, err)

			reference, err := httptest.ParseResponse(raw)
			require.NoError(t, err)
			require.Equal(t, reference.Code, int(response.Code))
			require.Equal(t, reference.Status, response.Status)
			require.Equal(t, reference.Headers.Expose(), response.Headers.Expose())
			require.Equal(t, reference.Body, string(response.Body))
		}
	})

	t.Run("header value", func(t *testing.T) {
		raw := httptest.ChunkedResponse(200, "OK", "", 16,
			"Content-Type: text/html",
			"X-No-Space:value",
			"X-Two-Spaces:  value",
			"X-Empty:",
			"X-Colons: a:b:c",
		)
		response, err := readResponse(nil, raw)
		require.NoError(t, err)
		require.Equal(t, "text/html", response.Headers.Value("Content-Type"))
		require.Equal(t, "value", response.Headers.Value("X-No-Space"))
		require.Equal(t, " value", response.Headers.Value("X-Two-Spaces"))
		require.True(t, response.Headers.Has("X-Empty"))
		require.Empty(t, response.Headers.Value("X-Empty"))
		require.Equal(t, "a:b:c", response.Headers.Value("X-Colons"))
		require.Empty(t, response.Body)
	})

	t.Run("duplicate headers", func(t *testing.T) {
		raw := httptest.ChunkedResponse(200, "OK", "", 16,
			"Set-Cookie: first", "Hello: world", "Set-Cookie: second", "hello: nether",
		)
		response, err := readResponse(nil, raw)
		require.NoError(t, err)
		require.Equal(t, []kv.Pair{
			{"Set-Cookie", "second"},
			{"Hello", "world"},
			{"hello", "nether"},
			{"Transfer-Encoding", "chunked"},
		}, response.Headers.Expose())
	})

	t.Run("status line without reason", func(t *testing.T) {
		raw := "HTTP/1.1 204\r\nTransfer-Encoding: chunked\r\n\r\n0\r\n\r\n"
		response, err := readResponse(nil, raw)
		require.NoError(t, err)
		require.Equal(t, status.NoContent, response.Code)
		require.Empty(t, response.Status)
	})

	t.Run("reason with spaces", func(t *testing.T) {
		raw := httptest.ChunkedResponse(500, "Internal Server Error", "oops", 16)
		response, err := readResponse(nil, raw)
		require.NoError(t, err)
		require.Equal(t, status.InternalServerError, response.Code)
		require.Equal(t, "Internal Server Error", response.Status)
		require.Equal(t, "oops", string(response.Body))
	})

	t.Run("lowercase framing", func(t *testing.T) {
		raw := "HTTP/1.1 200 OK\r\ntransfer-encoding: Chunked\r\n\r\n5\r\nhello\r\n0\r\n\r\n"
		response, err := readResponse(nil, raw)
		require.NoError(t, err)
		require.Equal(t, "hello", string(response.Body))
	})

	t.Run("malformed status line", func(t *testing.T) {
		for _, line := range []string{
			"\r\n",
			"HTTP/1.1\r\n",
			" 200 OK\r\n",
			"HTTP/1.1 OK\r\n",
			"HTTP/1.1 20 OK\r\n",
			"HTTP/1.1 2000 OK\r\n",
			"HTTP/1.1 2x0 OK\r\n",
			"HTTP/1.1 099 Weird\r\n",
		} {
			response, err := readResponse(nil, line+"Transfer-Encoding: chunked\r\n\r\n0\r\n\r\n")
			require.ErrorIs(t, err, http.ErrMalformedStatusLine, line)
			require.Nil(t, response)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		for _, header := range []string{"garbage", ": no name"} {
			raw := "HTTP/1.1 200 OK\r\n" + header + "\r\nTransfer-Encoding: chunked\r\n\r\n0\r\n\r\n"
			response, err := readResponse(nil, raw)
			require.ErrorIs(t, err, http.ErrMalformedHeader, header)
			require.Nil(t, response)
		}
	})

	t.Run("too many headers", func(t *testing.T) {
		cfg := config.Default()
		cfg.Headers.Number.Maximal = 10

		var headers []string
		for i := 0; i < 11; i++ {
			headers = append(headers, fmt.Sprintf("X-%s: %s", uniuri.NewLen(10), uniuri.New()))
		}

		raw := "HTTP/1.1 200 OK\r\n" + strings.Join(headers, "\r\n") + "\r\n\r\n"
		_, err := readResponse(cfg, raw)
		require.ErrorIs(t, err, http.ErrMalformedHeader)
	})

	t.Run("no framing", func(t *testing.T) {
		response, err := readResponse(nil, "HTTP/1.1 200 OK\r\nServer: test\r\n\r\nhello")
		require.ErrorIs(t, err, http.ErrUnsupportedFraming)
		require.Nil(t, response)
	})

	t.Run("content length framing", func(t *testing.T) {
		response, err := readResponse(nil, "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello")
		require.ErrorIs(t, err, http.ErrUnsupportedFraming)
		require.Contains(t, err.Error(), "Content-Length")
		require.Nil(t, response)
	})

	t.Run("unsupported transfer encoding", func(t *testing.T) {
		for _, encoding := range []string{"gzip", "gzip, chunked", "chunked, gzip", ""} {
			raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: " + encoding + "\r\n\r\n0\r\n\r\n"
			response, err := readResponse(nil, raw)
			require.ErrorIs(t, err, http.ErrUnsupportedFraming, encoding)
			require.Nil(t, response)
		}
	})

	t.Run("broken body discards response", func(t *testing.T) {
		raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\nzz\r\n"
		response, err := readResponse(nil, raw)
		require.ErrorIs(t, err, http.ErrMalformedChunkSize)
		require.Nil(t, response)
	})

	t.Run("connection closed mid headers", func(t *testing.T) {
		response, err := readResponse(nil, "HTTP/1.1 200 OK\r\nServer: te")
		require.ErrorIs(t, err, http.ErrRead)
		require.Nil(t, response)
	})

	t.Run("too long line", func(t *testing.T) {
		cfg := config.Default()
		cfg.NET.MaxLineSize = 32
		raw := httptest.ChunkedResponse(200, "OK", "", 16, "X-Long: "+strings.Repeat("a", 64))
		_, err := readResponse(cfg, raw)
		require.ErrorIs(t, err, http.ErrRead)
	})
}

func TestReaderState(t *testing.T) {
	require.Equal(t, "status line", eStatusLine.String())
	require.Equal(t, "chunked body", eChunkedBody.String())
	require.Equal(t, "unknown", readerState(0).String())
}
