package updatestatus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ceibacafe/ordering/internal/service/errs"
	"github.com/ceibacafe/ordering/internal/service/models/order"
	"github.com/ceibacafe/ordering/internal/service/models/orderstatus"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	err error
}

func (f *fakeService) UpdateStatus(_ context.Context, id int64, status string) (*order.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &order.Order{ID: id, Status: orderstatus.Status(status)}, nil
}

func TestUpdateStatusHandler(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		err      error
		wantCode int
	}{
		{
			name:     "valid update",
			path:     "/api/orders/1/status",
			body:     `{"status":"preparing"}`,
			wantCode: http.StatusOK,
		},
		{
			name:     "invalid id",
			path:     "/api/orders/abc/status",
			body:     `{"status":"preparing"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid JSON",
			path:     "/api/orders/1/status",
			body:     `{invalid}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing status",
			path:     "/api/orders/1/status",
			body:     `{}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "rejected transition",
			path:     "/api/orders/1/status",
			body:     `{"status":"confirmed"}`,
			err:      errs.ValidationError{Field: "status", Message: "cannot move from delivered to confirmed"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown order",
			path:     "/api/orders/1/status",
			body:     `{"status":"preparing"}`,
			err:      errs.NotFound("order", 1),
			wantCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			service := &fakeService{err: testCase.err}

			router := chi.NewRouter()
			router.Patch("/api/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
				UpdateStatus(w, r, service)
			})

			req := httptest.NewRequest(http.MethodPatch, testCase.path, strings.NewReader(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}
