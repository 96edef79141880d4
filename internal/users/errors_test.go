package users_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/edustack/lessonlab/internal/users"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{users.ErrNotFound, http.StatusNotFound},
		{users.ErrDuplicate, http.StatusConflict},
		{users.ErrInvalid, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := users.MapHTTPStatus(tt.err); got != tt.want {
				t.Fatalf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
