// Package apitest builds gin routers for handler tests without real JWTs.
package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHeader carries the caller id in tests instead of a bearer token.
const UserHeader = "X-Test-User-ID"

// Envelope is the decoded response body.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

// Router returns an engine with the /api group split the way cmd/api
// splits it: optional accepts anonymous callers, protected requires one.
func Router() (r *gin.Engine, optional, protected *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	r = gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		if raw := c.GetHeader(UserHeader); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				c.Set(middleware.ContextUserID, id)
			}
		}
		c.Next()
	})
	optional = api.Group("")
	protected = api.Group("")
	protected.Use(func(c *gin.Context) {
		if middleware.UserID(c) == 0 {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}
		c.Next()
	})
	return r, optional, protected
}

// Do sends a JSON request as userID (0 = anonymous).
func Do(r http.Handler, method, path string, body any, userID int64) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(UserHeader, strconv.FormatInt(userID, 10))
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

// Decode unmarshals the envelope and, when out is non-nil, its data.
func Decode(t *testing.T, rr *httptest.ResponseRecorder, out any) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v, body=%s", err, rr.Body.String())
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v, body=%s", err, rr.Body.String())
		}
	}
	return env
}
