package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-land-rentals/internal/api/middleware"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		config      middleware.CORSConfig
		origin      string
		wantStatus  int
		allowOrigin string
	}{
		{
			name:        "all origins by default",
			config:      middleware.CORSConfig{},
			origin:      "https://market.example",
			wantStatus:  http.StatusOK,
			allowOrigin: "*",
		},
		{
			name:        "listed origin",
			config:      middleware.CORSConfig{AllowedOrigins: []string{"https://market.example"}},
			origin:      "https://market.example",
			wantStatus:  http.StatusOK,
			allowOrigin: "https://market.example",
		},
		{
			name:       "unlisted origin",
			config:     middleware.CORSConfig{AllowedOrigins: []string{"https://market.example"}},
			origin:     "https://other.example",
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(middleware.CORS(tt.config))
			router.GET("/v1/rentals-listings", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/rentals-listings", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.allowOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
