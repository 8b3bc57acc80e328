package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Invalid("bad", ""), http.StatusBadRequest},
		{New(Unauthenticated, "who"), http.StatusUnauthorized},
		{New(Forbidden, "no"), http.StatusForbidden},
		{NotFoundf("draw %s not found", "x"), http.StatusNotFound},
		{Wrap(errors.New("db down"), "failed"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("outer: %w", New(NotFound, "inner")), http.StatusNotFound},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, "failed to insert vote")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to insert vote: connection reset", err.Error())
	assert.True(t, Is(err, Internal))
	assert.False(t, Is(err, NotFound))
}
