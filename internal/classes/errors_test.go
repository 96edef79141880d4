package classes_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/edustack/lessonlab/internal/classes"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{classes.ErrNotFound, http.StatusNotFound},
		{classes.ErrDuplicate, http.StatusConflict},
		{classes.ErrInvalid, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := classes.MapHTTPStatus(tt.err); got != tt.want {
				t.Fatalf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
