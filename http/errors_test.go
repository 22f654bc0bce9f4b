package http

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("match by kind", func(t *testing.T) {
		err := ErrMalformedHeader.Withf("no colon in %q", "garbage")
		require.ErrorIs(t, err, ErrMalformedHeader)
		require.NotErrorIs(t, err, ErrMalformedStatusLine)
		require.Equal(t, `no colon in "garbage"`, err.Error())
	})

	t.Run("cause", func(t *testing.T) {
		err := ErrRead.Wrap(io.ErrUnexpectedEOF)
		require.ErrorIs(t, err, ErrRead)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		require.Equal(t, "reading from connection failed: unexpected EOF", err.Error())
	})

	t.Run("sentinels stay intact", func(t *testing.T) {
		_ = ErrWrite.Wrap(io.EOF).Withf("changed")
		require.Nil(t, ErrWrite.Cause)
		require.Equal(t, "writing to connection failed", ErrWrite.Reason)
	})

	t.Run("as", func(t *testing.T) {
		var err error = ErrUnsupportedFraming.Withf("transfer-encoding gzip")
		var target *Error
		require.True(t, errors.As(err, &target))
		require.Equal(t, KindUnsupportedFraming, target.Kind)
		require.Equal(t, "unsupported framing", target.Kind.String())
	})
}
