package storefront_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/vscooter54-cell/VScooter-sub000/pkg/storefront"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const fakeToken = "tok-1"

var unitPrice = decimal.NewFromInt(10)

type line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// fakeAPI is a small in-memory backend speaking the storefront envelope.
type fakeAPI struct {
	t   *testing.T
	srv *httptest.Server

	mu          sync.Mutex
	calls       []string
	items       []line
	coupon      string
	mergeBody   []line
	idemKeys    []string
	failMerge   bool
	failAdd     bool
	failOrder   string
	orderDown   bool
	failAddress bool
	revoked     bool

	// when set, POST /orders signals orderEntered and waits on orderRelease
	orderEntered chan struct{}
	orderRelease chan struct{}
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{t: t}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", f.login)
	mux.HandleFunc("POST /api/v1/auth/logout", f.authed(func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, http.StatusOK, nil)
	}))
	mux.HandleFunc("GET /api/v1/carts", f.authed(f.getCart))
	mux.HandleFunc("DELETE /api/v1/carts", f.authed(f.clearCart))
	mux.HandleFunc("POST /api/v1/carts/items", f.authed(f.addItem))
	mux.HandleFunc("PUT /api/v1/carts/items/{id}", f.authed(f.updateItem))
	mux.HandleFunc("DELETE /api/v1/carts/items/{id}", f.authed(f.deleteItem))
	mux.HandleFunc("POST /api/v1/carts/coupon", f.authed(f.applyCoupon))
	mux.HandleFunc("DELETE /api/v1/carts/coupon", f.authed(f.removeCoupon))
	mux.HandleFunc("POST /api/v1/carts/merge", f.authed(f.merge))
	mux.HandleFunc("POST /api/v1/addresses", f.authed(f.saveAddress))
	mux.HandleFunc("POST /api/v1/orders", f.authed(f.createOrder))

	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls = append(f.calls, r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api/v1"))
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) client(t *testing.T) *storefront.Client {
	t.Helper()
	c, err := storefront.NewClient(storefront.Options{BaseURL: f.srv.URL})
	require.NoError(t, err)
	return c
}

func (f *fakeAPI) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) count(call string) int {
	n := 0
	for _, c := range f.callLog() {
		if c == call {
			n++
		}
	}
	return n
}

// configure mutates the fake under its lock.
func (f *fakeAPI) configure(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) merged() []line {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mergeBody
}

func (f *fakeAPI) seed(items ...line) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]line(nil), items...)
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": msg},
	})
}

func (f *fakeAPI) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		revoked := f.revoked
		f.mu.Unlock()
		if revoked || r.Header.Get("Authorization") != "Bearer "+fakeToken {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
			return
		}
		next(w, r)
	}
}

func (f *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Password != "secret123" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password")
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"user":         storefront.User{ID: "u-1", Email: body.Email, Name: "Rider", Role: "CUSTOMER"},
		"access_token": fakeToken,
	})
}

// cartLocked prices every line at 10 with SAVE10 taking 10% off.
func (f *fakeAPI) cartLocked() storefront.Cart {
	items := make([]storefront.CartItem, 0, len(f.items))
	subtotal := decimal.Zero
	for _, l := range f.items {
		price := unitPrice
		total := unitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		subtotal = subtotal.Add(total)
		items = append(items, storefront.CartItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Name:      "Scooter " + l.ProductID,
			UnitPrice: &price,
			LineTotal: &total,
		})
	}
	discount := decimal.Zero
	if f.coupon == "SAVE10" {
		discount = subtotal.Div(decimal.NewFromInt(10))
	}
	return storefront.Cart{
		ID:         "cart-1",
		Items:      items,
		Currency:   "USD",
		CouponCode: f.coupon,
		Calculations: &storefront.Calculations{
			Subtotal: subtotal,
			Discount: discount,
			Tax:      decimal.Zero,
			Shipping: decimal.Zero,
			Total:    subtotal.Sub(discount),
		},
	}
}

func (f *fakeAPI) writeCart(w http.ResponseWriter) {
	f.mu.Lock()
	c := f.cartLocked()
	f.mu.Unlock()
	writeData(w, http.StatusOK, c)
}

func (f *fakeAPI) getCart(w http.ResponseWriter, _ *http.Request) { f.writeCart(w) }

func (f *fakeAPI) clearCart(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	f.items = nil
	f.coupon = ""
	f.mu.Unlock()
	writeData(w, http.StatusOK, nil)
}

func (f *fakeAPI) upsert(productID string, qty int) {
	for i := range f.items {
		if f.items[i].ProductID == productID {
			f.items[i].Quantity += qty
			return
		}
	}
	f.items = append(f.items, line{ProductID: productID, Quantity: qty})
}

func (f *fakeAPI) addItem(w http.ResponseWriter, r *http.Request) {
	var body line
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.mu.Lock()
	fail := f.failAdd
	if !fail {
		f.upsert(body.ProductID, body.Quantity)
	}
	f.mu.Unlock()
	if fail {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "")
		return
	}
	f.writeCart(w)
}

func (f *fakeAPI) updateItem(w http.ResponseWriter, r *http.Request) {
	var body line
	_ = json.NewDecoder(r.Body).Decode(&body)
	id := r.PathValue("id")
	f.mu.Lock()
	for i := range f.items {
		if f.items[i].ProductID == id {
			f.items[i].Quantity = body.Quantity
		}
	}
	f.mu.Unlock()
	f.writeCart(w)
}

func (f *fakeAPI) deleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	f.mu.Lock()
	kept := f.items[:0]
	for _, l := range f.items {
		if l.ProductID != id {
			kept = append(kept, l)
		}
	}
	f.items = kept
	f.mu.Unlock()
	f.writeCart(w)
}

func (f *fakeAPI) applyCoupon(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Code != "SAVE10" {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_COUPON", "Coupon code is not valid")
		return
	}
	f.mu.Lock()
	f.coupon = body.Code
	f.mu.Unlock()
	f.writeCart(w)
}

func (f *fakeAPI) removeCoupon(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	f.coupon = ""
	f.mu.Unlock()
	f.writeCart(w)
}

func (f *fakeAPI) merge(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items []line `json:"items"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.mergeBody = body.Items
	fail := f.failMerge
	if !fail {
		for _, l := range body.Items {
			f.upsert(l.ProductID, l.Quantity)
		}
	}
	f.mu.Unlock()

	if fail {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "")
		return
	}
	f.writeCart(w)
}

func (f *fakeAPI) saveAddress(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	fail := f.failAddress
	f.mu.Unlock()
	if fail {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "")
		return
	}
	writeData(w, http.StatusCreated, map[string]string{"id": "addr-1"})
}

func (f *fakeAPI) createOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ShippingAddress storefront.ShippingAddress `json:"shippingAddress"`
		PaymentMethodID string                     `json:"paymentMethodId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.idemKeys = append(f.idemKeys, r.Header.Get("Idempotency-Key"))
	failMsg := f.failOrder
	down := f.orderDown
	entered, release := f.orderEntered, f.orderRelease
	c := f.cartLocked()
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
		<-release
	}
	if down {
		writeError(w, http.StatusInternalServerError, "ORDER_FAILED", "Could not place order")
		return
	}
	if failMsg != "" {
		writeError(w, http.StatusPaymentRequired, "PAYMENT_FAILED", failMsg)
		return
	}
	writeData(w, http.StatusCreated, storefront.PlacedOrder{
		Order: storefront.Order{
			ID:              "order-1",
			OrderNumber:     "VS-20261019-ABC123",
			Status:          "PENDING",
			PaymentStatus:   "PAID",
			Currency:        c.Currency,
			Calculations:    *c.Calculations,
			ShippingAddress: body.ShippingAddress,
		},
		Payment: storefront.Payment{IntentID: "pi_1", Status: "PAID"},
	})
}
