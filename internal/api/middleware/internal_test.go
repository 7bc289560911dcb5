package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/blitz-booking/internal/domain"
)

func TestInternalToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		want       int
	}{
		{name: "valid", configured: "s3cret", header: "s3cret", want: http.StatusNoContent},
		{name: "missing", configured: "s3cret", header: "", want: http.StatusUnauthorized},
		{name: "wrong", configured: "s3cret", header: "guess", want: http.StatusUnauthorized},
		{name: "not configured", configured: "", header: "", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusNoContent)
			})

			r := httptest.NewRequest(http.MethodGet, "/api/v1/internal/retreats/7/remind?kind=reminder", nil)
			if tt.header != "" {
				r.Header.Set(domain.CronTokenHeader, tt.header)
			}
			w := httptest.NewRecorder()

			InternalToken(tt.configured)(next).ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, tt.want == http.StatusNoContent, called)
		})
	}
}
