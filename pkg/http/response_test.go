package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAppErrorResponse(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"app error", GatewayTimeoutError("Request timed out"), http.StatusGatewayTimeout, `{"error":"Request timed out"}`},
		{"wrapped app error", fmt.Errorf("proxy: %w", UpstreamError(409, "alert exists")), 409, `{"error":"alert exists"}`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
	}
	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			if err := AppErrorResponse(c, tc.err); err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if rec.Code != tc.status || strings.TrimSpace(rec.Body.String()) != tc.body {
				t.Fatalf("got %d %s", rec.Code, rec.Body.String())
			}
		})
	}
}
