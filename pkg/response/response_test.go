package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"validation", pkgerrors.Validation("bad date"), http.StatusBadRequest, CodeValidation},
		{"not found", pkgerrors.NotFound("missing"), http.StatusNotFound, CodeNotFound},
		{"conflict", pkgerrors.Conflict("exists"), http.StatusConflict, CodeConflict},
		{"insufficient", pkgerrors.InsufficientData("empty"), http.StatusUnprocessableEntity, CodeInsufficientData},
		{"optimistic lock", pkgerrors.ErrOptimisticLock, http.StatusConflict, CodeConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("want status %d, got %d", tt.wantStatus, w.Code)
			}
			var body Response
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("want code %d, got %d", tt.wantCode, body.Code)
			}
			if tt.wantStatus == http.StatusInternalServerError && body.Message == "boom" {
				t.Error("internal error text must not leak")
			}
		})
	}
}

func TestOKPage_TotalPages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OKPage(c, []int{1, 2}, 21, 1, 10)

	var body struct {
		Data PageData `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.Pagination.TotalPages != 3 {
		t.Errorf("want 3 pages, got %d", body.Data.Pagination.TotalPages)
	}
}
