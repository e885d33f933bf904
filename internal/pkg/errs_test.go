package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"not found", NotFound("gone"), http.StatusNotFound},
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"unauthorized sentinel", ErrUnauthorized, http.StatusUnauthorized},
		{"unclassified", errors.New("disk on fire"), http.StatusInternalServerError},
		{"cache invalidation is a store failure", CacheInvalidation(errors.New("incr timeout")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrappedErrorsKeepMessage(t *testing.T) {
	err := Conflict("post already reported")
	if !errors.Is(err, ErrConflict) {
		t.Fatal("want errors.Is to match the sentinel")
	}
	if err.Error() != "post already reported: conflict" {
		t.Fatalf("message = %q", err.Error())
	}
}
