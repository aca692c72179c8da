package address_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vscooter54-cell/VScooter-sub000/internal/address"
	mockAddress "github.com/vscooter54-cell/VScooter-sub000/internal/mock/address"
	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(svc address.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-1")
		c.Next()
	}
	address.RegisterRoutes(r.Group("/api/v1"), address.NewHandler(svc), auth)
	return r
}

func TestAddressHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := mockAddress.NewMockService(gomock.NewController(t))
		svc.EXPECT().
			Create(gomock.Any(), "user-1", gomock.Any()).
			Return(address.AddressResponse{ID: "a1", City: "Austin"}, nil)

		body := `{"street":"1 Main St","city":"Austin","state":"TX","postalCode":"73301","country":"US"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/addresses", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"city":"Austin"`)
	})

	t.Run("missing_field", func(t *testing.T) {
		svc := mockAddress.NewMockService(gomock.NewController(t))

		body := `{"street":"1 Main St","city":"Austin"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/addresses", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please fill in all shipping fields")
	})
}

func TestAddressHandler_List(t *testing.T) {
	svc := mockAddress.NewMockService(gomock.NewController(t))
	svc.EXPECT().List(gomock.Any(), "user-1").Return([]address.AddressResponse{{ID: "a1"}}, nil)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/addresses", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"a1"`)
}
