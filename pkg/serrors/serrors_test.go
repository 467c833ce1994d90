package serrors_test

import (
	"errors"
	"testing"
	"veriweb/pkg/serrors"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrForbidden,
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrInternal,
		serrors.ErrTimeout,
		serrors.ErrUnavailable,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("db down")

	e1 := serrors.With(serrors.ErrNotFound, "analysis %d not found", 42)
	require.Equal(t, "analysis 42 not found", e1.Error())

	e2 := serrors.Wrap(serrors.ErrNotFound, base, "getting analysis")
	require.Equal(t, "getting analysis: db down", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrNotFound)
	require.Equal(t, "NOT_FOUND", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	require.ErrorIs(t, e, serrors.ErrNotFound)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrUnauthorized)
}

func TestAsMatchesWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrBadRequest, base, "parsing")

	var got customError
	require.ErrorAs(t, e, &got)
	require.Equal(t, base.msg, got.msg)
}

func TestKindAccessors(t *testing.T) {
	cause := errors.New("boom")
	e := serrors.Wrap(serrors.ErrConflict, cause, "storing")

	require.Equal(t, serrors.ErrConflict, e.Kind())
	require.Equal(t, "storing", e.Message())
	require.Equal(t, cause, e.Cause())
}
