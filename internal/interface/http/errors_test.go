package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/oksasatya/roundup-savings/internal/application"
	"github.com/oksasatya/roundup-savings/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrInvalidDescription, http.StatusBadRequest},
		{domain.ErrUnknownUser, http.StatusNotFound},
		{fmt.Errorf("post: %w", domain.ErrUnknownUser), http.StatusNotFound},
		{domain.ErrInvalidGoal, http.StatusBadRequest},
		{domain.ErrGoalNotFound, http.StatusNotFound},
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{application.ErrExportUnavailable, http.StatusServiceUnavailable},
		{domain.Persistence("insert transaction", errors.New("connection reset")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		got, msg := statusFor(tc.err)
		if got != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, got)
		}
		if got == http.StatusInternalServerError && msg != "internal error" {
			t.Errorf("%v: 500 must not leak detail, got %q", tc.err, msg)
		}
	}
}
