package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-1")

	Error[any](c, http.StatusNotFound, "unknown user", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "unknown user" || body["request_id"] != "rid-1" || body["success"] != false {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestSuccessDefaultsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	resp := Success(c, 0, map[string]int{"n": 1}, "ok", nil)
	if resp.Status != http.StatusOK || w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d/%d", resp.Status, w.Code)
	}
}
