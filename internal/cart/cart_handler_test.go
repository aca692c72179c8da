package cart_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vscooter54-cell/VScooter-sub000/internal/cart"
	"github.com/vscooter54-cell/VScooter-sub000/internal/coupon"
	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// ==================== FAKE SERVICE ====================

type fakeCartService struct {
	cart.Service

	DetailFn      func(ctx context.Context, userID string) (cart.CartResponse, error)
	AddItemFn     func(ctx context.Context, userID string, req cart.AddItemRequest) (cart.CartResponse, error)
	UpdateQtyFn   func(ctx context.Context, userID, productID string, req cart.UpdateQtyRequest) (cart.CartResponse, error)
	ClearFn       func(ctx context.Context, userID string) error
	ApplyCouponFn func(ctx context.Context, userID string, req cart.ApplyCouponRequest) (cart.CartResponse, error)
	MergeFn       func(ctx context.Context, userID string, req cart.MergeRequest) (cart.CartResponse, error)
}

func (f *fakeCartService) Detail(ctx context.Context, userID string) (cart.CartResponse, error) {
	return f.DetailFn(ctx, userID)
}
func (f *fakeCartService) AddItem(ctx context.Context, userID string, req cart.AddItemRequest) (cart.CartResponse, error) {
	return f.AddItemFn(ctx, userID, req)
}
func (f *fakeCartService) UpdateQty(ctx context.Context, userID, productID string, req cart.UpdateQtyRequest) (cart.CartResponse, error) {
	return f.UpdateQtyFn(ctx, userID, productID, req)
}
func (f *fakeCartService) Clear(ctx context.Context, userID string) error {
	return f.ClearFn(ctx, userID)
}
func (f *fakeCartService) ApplyCoupon(ctx context.Context, userID string, req cart.ApplyCouponRequest) (cart.CartResponse, error) {
	return f.ApplyCouponFn(ctx, userID, req)
}
func (f *fakeCartService) Merge(ctx context.Context, userID string, req cart.MergeRequest) (cart.CartResponse, error) {
	return f.MergeFn(ctx, userID, req)
}

// ==================== HELPERS ====================

const testUserID = "5b0c7f0e-4f3a-4f0e-9d9a-2b7f8c1d0e11"

func fakeAuth(c *gin.Context) {
	c.Set(middleware.ContextUserID, testUserID)
	c.Next()
}

func setupCartRouter(svc cart.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cart.RegisterRoutes(r.Group("/api/v1"), cart.NewHandler(svc), fakeAuth)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== TESTS ====================

func TestCartHandler_Detail(t *testing.T) {
	r := setupCartRouter(&fakeCartService{
		DetailFn: func(_ context.Context, userID string) (cart.CartResponse, error) {
			assert.Equal(t, testUserID, userID)
			return cart.CartResponse{Currency: "USD", Items: []cart.CartItemResponse{}}, nil
		},
	})

	w := do(r, http.MethodGet, "/api/v1/carts", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"currency":"USD"`)
}

func TestCartHandler_AddItem(t *testing.T) {
	pid := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		r := setupCartRouter(&fakeCartService{
			AddItemFn: func(_ context.Context, _ string, req cart.AddItemRequest) (cart.CartResponse, error) {
				assert.Equal(t, pid, req.ProductID)
				assert.Equal(t, int32(2), req.Quantity)
				return cart.CartResponse{Items: []cart.CartItemResponse{{ProductID: pid, Quantity: 2}}}, nil
			},
		})

		w := do(r, http.MethodPost, "/api/v1/carts/items", `{"productId":"`+pid+`","quantity":2}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"quantity":2`)
	})

	t.Run("bad_product_id", func(t *testing.T) {
		r := setupCartRouter(&fakeCartService{})

		w := do(r, http.MethodPost, "/api/v1/carts/items", `{"productId":"abc"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}

func TestCartHandler_UpdateQty_Zero(t *testing.T) {
	r := setupCartRouter(&fakeCartService{})

	w := do(r, http.MethodPut, "/api/v1/carts/items/"+uuid.NewString(), `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	calls := 0
	r := setupCartRouter(&fakeCartService{
		ClearFn: func(context.Context, string) error {
			calls++
			return nil
		},
	})

	w := do(r, http.MethodDelete, "/api/v1/carts", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, calls)
}

func TestCartHandler_ApplyCoupon_Rejected(t *testing.T) {
	r := setupCartRouter(&fakeCartService{
		ApplyCouponFn: func(context.Context, string, cart.ApplyCouponRequest) (cart.CartResponse, error) {
			return cart.CartResponse{}, coupon.ErrCouponExpired
		},
	})

	w := do(r, http.MethodPost, "/api/v1/carts/coupon", `{"code":"SPRING"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "COUPON_EXPIRED")
}

func TestCartHandler_Merge(t *testing.T) {
	a := uuid.NewString()

	t.Run("passes_items_through", func(t *testing.T) {
		r := setupCartRouter(&fakeCartService{
			MergeFn: func(_ context.Context, _ string, req cart.MergeRequest) (cart.CartResponse, error) {
				assert.Len(t, req.Items, 1)
				return cart.CartResponse{}, nil
			},
		})

		w := do(r, http.MethodPost, "/api/v1/carts/merge", `{"items":[{"productId":"`+a+`","quantity":2}]}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty_items", func(t *testing.T) {
		r := setupCartRouter(&fakeCartService{})

		w := do(r, http.MethodPost, "/api/v1/carts/merge", `{"items":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
