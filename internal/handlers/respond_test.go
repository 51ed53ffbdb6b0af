package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"content-studio-backend/internal/service"
)

func respondTo(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	respondError(c, err)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body["error"]
}

func TestRespondErrorMapsNotFound(t *testing.T) {
	status, msg := respondTo(t, fmt.Errorf("section with ID s-1: %w", service.ErrSectionNotFound))
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if !strings.Contains(msg, "s-1") {
		t.Fatalf("not-found message should carry the id, got %q", msg)
	}
}

func TestRespondErrorMapsValidation(t *testing.T) {
	status, msg := respondTo(t, service.ErrSectionsRequired)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if msg != service.ErrSectionsRequired.Error() {
		t.Fatalf("validation message should surface verbatim, got %q", msg)
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	driverErr := errors.New(`pq: password authentication failed for user "cms"`)
	status, msg := respondTo(t, fmt.Errorf("failed to create section: %w", driverErr))

	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if strings.Contains(msg, "pq:") {
		t.Fatalf("driver error must not reach the client, got %q", msg)
	}
	if msg != service.ErrMutationFailed.Error() {
		t.Fatalf("internal failures should map to the generic message, got %q", msg)
	}
}
