package createorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ceibacafe/ordering/internal/service/errs"
	"github.com/ceibacafe/ordering/internal/service/models/order"
	"github.com/ceibacafe/ordering/internal/service/models/orderstatus"
	"github.com/ceibacafe/ordering/internal/service/services/ordersvc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	err     error
	lastReq ordersvc.CreateOrderRequest
}

func (f *fakeService) CreateOrder(_ context.Context, req ordersvc.CreateOrderRequest) (*order.Order, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &order.Order{
		ID:                    7,
		RestaurantID:          req.RestaurantID,
		Status:                orderstatus.StatusConfirmed,
		Total:                 decimal.RequireFromString("35.98"),
		EstimatedDeliveryTime: "25-35 min",
	}, nil
}

func TestCreateOrderHandler(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{
			name:     "created",
			body:     `{"restaurantId":1,"items":[{"menuItemId":6,"quantity":2}]}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "invalid JSON",
			body:     `{invalid}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "validation failure",
			body:     `{"restaurantId":1,"items":[]}`,
			err:      errs.ValidationError{Field: "items", Message: "must not be empty"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown restaurant",
			body:     `{"restaurantId":42,"items":[{"menuItemId":6,"quantity":1}]}`,
			err:      errs.NotFound("restaurant", 42),
			wantCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			service := &fakeService{err: testCase.err}

			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			CreateOrder(w, req, service)

			assert.Equal(t, testCase.wantCode, w.Code)

			if testCase.wantCode == http.StatusCreated {
				var created order.Order
				require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
				assert.Equal(t, int64(7), created.ID)
				assert.Equal(t, orderstatus.StatusConfirmed, created.Status)
				assert.Equal(t, int64(1), service.lastReq.RestaurantID)
			}
		})
	}
}
