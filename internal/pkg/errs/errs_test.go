//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"restaurant-pos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomy(t *testing.T) {
	t.Run("precondition is marked", func(t *testing.T) {
		err := errs.Precondition("no signed-in user")
		assert.True(t, errs.Is(err, errs.ErrPrecondition))
		assert.False(t, errs.Is(err, errs.ErrBackend))
		assert.Contains(t, err.Error(), "no signed-in user")
	})

	t.Run("backend keeps the cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.Backend(cause, "failed to fetch orders")
		assert.True(t, errs.Is(err, errs.ErrBackend))
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to fetch orders: connection refused", err.Error())
	})

	t.Run("local storage", func(t *testing.T) {
		err := errs.LocalStorage(errors.New("disk full"), "write payments")
		assert.True(t, errs.Is(err, errs.ErrLocalStorage))
	})

	t.Run("wrap nil stays nil", func(t *testing.T) {
		assert.NoError(t, errs.Wrap(nil, "ignored"))
		assert.Equal(t, errs.ErrOffline, errs.Mark(nil, errs.ErrOffline))
	})

	t.Run("refined preconditions match both marks", func(t *testing.T) {
		for _, c := range []struct {
			err  error
			mark error
		}{
			{errs.NotSignedIn(), errs.ErrNotSignedIn},
			{errs.Forbidden("manager role required"), errs.ErrForbidden},
			{errs.NotFound("order"), errs.ErrNotFound},
		} {
			assert.True(t, errs.Is(c.err, c.mark))
			assert.True(t, errs.Is(c.err, errs.ErrPrecondition))
		}
		assert.Equal(t, "order not found", errs.NotFound("order").Error())
	})

	t.Run("invalid keeps the domain error", func(t *testing.T) {
		domainErr := errors.New("payment amount must be greater than zero")
		err := errs.Invalid(domainErr)
		assert.True(t, errs.Is(err, errs.ErrPrecondition))
		assert.ErrorIs(t, err, domainErr)
	})
}
