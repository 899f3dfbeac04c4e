package serrors_test

import (
	"errors"
	"testing"

	"sitedeploy/pkg/serrors"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrAuthentication,
		serrors.ErrUnavailable,
		serrors.ErrPermissionDenied,
		serrors.ErrUploadFailed,
		serrors.ErrLocalIO,
		serrors.ErrOutOfOrder,
		serrors.ErrUnsupported,
		serrors.ErrInvalidArgument,
		serrors.ErrNotConfigured,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection reset")

	require.Equal(t, "bucket example.com missing", serrors.With(serrors.ErrUnavailable, "bucket %s missing", "example.com").Error())
	require.Equal(t, "writing index.html: connection reset", serrors.Wrap(serrors.ErrUploadFailed, base, "writing %s", "index.html").Error())
	require.Equal(t, "connection reset", serrors.Wrap(serrors.ErrUnavailable, base, "").Error())
	require.Equal(t, "permission denied", serrors.With(serrors.ErrPermissionDenied, "").Error())
}

func TestIsMatchesKindAndCause(t *testing.T) {
	base := customError{"root cause"}
	err := serrors.Wrap(serrors.ErrLocalIO, base, "reading")

	require.ErrorIs(t, err, serrors.ErrLocalIO)
	require.ErrorIs(t, err, base)
	require.NotErrorIs(t, err, serrors.ErrUploadFailed)
}

func TestNestedKindsStayVisible(t *testing.T) {
	inner := serrors.With(serrors.ErrPermissionDenied, "access denied")
	outer := serrors.Wrap(serrors.ErrUploadFailed, inner, "writing index.html")

	require.ErrorIs(t, outer, serrors.ErrUploadFailed)
	require.ErrorIs(t, outer, serrors.ErrPermissionDenied)
	require.Equal(t, serrors.ErrUploadFailed, serrors.KindOf(outer))
}

func TestKindOfPlainError(t *testing.T) {
	require.Nil(t, serrors.KindOf(errors.New("plain")))
	require.Nil(t, serrors.KindOf(nil))
}

func TestAsExtractsCause(t *testing.T) {
	base := &customError{"root cause"}
	err := serrors.Wrap(serrors.ErrUnavailable, base, "calling provider")

	var ce *customError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, base, ce)
}
