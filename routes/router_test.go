package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"event-portal/api"
	controller "event-portal/controllers"
	"event-portal/helpers"
	"event-portal/logger"
	"event-portal/models"
	"event-portal/sessions"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"gopkg.in/go-playground/assert.v1"
)

// platform is an in-memory stand-in for the event platform REST API.
type platform struct {
	mu       sync.Mutex
	orders   map[int]*models.Order
	placed   []models.CreateOrderRequest
	patches  int
	loggedIn map[string]bool
}

func newPlatform() *platform {
	return &platform{orders: make(map[int]*models.Order), loggedIn: make(map[string]bool)}
}

var (
	stallID  = 3
	students = models.User{ID: 1, Email: "student@uni.test", FullName: "Sam Student", Role: models.RoleStudent}
	operator = models.User{ID: 2, Email: "stall@uni.test", FullName: "Olu Operator", Role: models.RoleFoodStall, StallID: &stallID}
)

var menu = []models.MenuItem{
	{ID: 1, StallID: 3, Name: "Burger", Price: decimal.RequireFromString("10.99"), IsAvailable: true, Category: "mains"},
	{ID: 2, StallID: 3, Name: "Fries", Price: decimal.RequireFromString("5.00"), IsAvailable: true, Category: "sides"},
	{ID: 3, StallID: 3, Name: "Shake", Price: decimal.RequireFromString("4.50"), IsAvailable: false, Category: "drinks"},
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (p *platform) user(r *http.Request) (models.User, bool) {
	switch strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") {
	case "access-student":
		return students, true
	case "access-stall":
		return operator, true
	}
	return models.User{}, false
}

func (p *platform) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		var req models.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch req.Email {
		case students.Email:
			writeJSON(w, http.StatusOK, models.LoginResponse{AccessToken: "access-student", TokenType: "bearer", User: &students})
		case operator.Email:
			writeJSON(w, http.StatusOK, models.LoginResponse{RequiresTwoFactor: true, TempToken: "temp-stall"})
		default:
			detail(w, http.StatusUnauthorized, "Incorrect email or password")
		}
		return
	case r.Method == http.MethodPost && r.URL.Path == "/auth/verify-2fa":
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["code"] != "123456" || req["temp_token"] != "temp-stall" {
			detail(w, http.StatusUnauthorized, "Invalid 2FA code")
			return
		}
		writeJSON(w, http.StatusOK, models.LoginResponse{AccessToken: "access-stall", TokenType: "bearer"})
		return
	}

	u, ok := p.user(r)
	if !ok {
		detail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/auth/me":
		writeJSON(w, http.StatusOK, u)
	case r.Method == http.MethodPost && r.URL.Path == "/auth/logout":
		writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
	case r.Method == http.MethodGet && r.URL.Path == "/events":
		writeJSON(w, http.StatusOK, []models.Event{{ID: 1, Name: "Spring Festival", IsActive: true, Date: time.Now().Add(48 * time.Hour)}})
	case r.Method == http.MethodGet && r.URL.Path == "/stalls/3/menu-items":
		writeJSON(w, http.StatusOK, menu)
	case r.Method == http.MethodPost && r.URL.Path == "/orders":
		var req models.CreateOrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		p.placed = append(p.placed, req)
		total := decimal.Zero
		for _, in := range req.Items {
			for _, m := range menu {
				if m.ID == in.ItemID {
					total = total.Add(m.Price.Mul(decimal.NewFromInt(int64(in.Quantity))))
				}
			}
		}
		order := &models.Order{ID: 100, UserID: u.ID, StallID: req.StallID, Status: models.StatusPending, TotalAmount: total, CreatedAt: time.Now()}
		p.orders[order.ID] = order
		writeJSON(w, http.StatusCreated, order)
	case r.Method == http.MethodGet && r.URL.Path == "/orders":
		list := []models.Order{}
		for _, o := range p.orders {
			list = append(list, *o)
		}
		writeJSON(w, http.StatusOK, list)
	case strings.HasPrefix(r.URL.Path, "/orders/"):
		p.order(w, r)
	default:
		detail(w, http.StatusNotFound, "Not Found")
	}
}

func (p *platform) order(w http.ResponseWriter, r *http.Request) {
	var id int
	var suffix string
	fmt.Sscanf(strings.Replace(r.URL.Path, "/orders/", "", 1), "%d%s", &id, &suffix)
	o, ok := p.orders[id]
	if !ok {
		detail(w, http.StatusNotFound, "Order not found")
		return
	}

	switch {
	case r.Method == http.MethodGet && suffix == "":
		writeJSON(w, http.StatusOK, o)
	case r.Method == http.MethodPatch && suffix == "/status":
		p.patches++
		var req map[string]models.OrderStatus
		_ = json.NewDecoder(r.Body).Decode(&req)
		next := map[models.OrderStatus]models.OrderStatus{
			models.StatusPending:   models.StatusPreparing,
			models.StatusPreparing: models.StatusReady,
			models.StatusReady:     models.StatusCompleted,
		}
		if next[o.Status] != req["status"] {
			detail(w, http.StatusBadRequest, fmt.Sprintf("Cannot change status from %s to %s", o.Status, req["status"]))
			return
		}
		o.Status = req["status"]
		writeJSON(w, http.StatusOK, map[string]string{"message": "Order status updated successfully"})
	case r.Method == http.MethodDelete && suffix == "":
		if o.Status != models.StatusPending {
			detail(w, http.StatusBadRequest, "Only pending orders can be cancelled")
			return
		}
		o.Status = models.StatusCancelled
		writeJSON(w, http.StatusOK, o)
	default:
		detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

type harness struct {
	t        *testing.T
	platform *platform
	env      *controller.Env
	router   *gin.Engine
}

func newHarness(t *testing.T) *harness {
	gin.SetMode(gin.TestMode)
	p := newPlatform()
	srv := httptest.NewServer(p)
	t.Cleanup(srv.Close)

	log := logger.NewWithWriter("event-portal-test", io.Discard, "error")
	env := controller.NewEnv(api.NewClient(srv.URL, 5*time.Second), sessions.NewMemoryStore(), log, "test-secret", time.Hour, []string{"http://localhost:3000"})
	return &harness{t: t, platform: p, env: env, router: Router(env, []string{"http://localhost:3000"})}
}

func (h *harness) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("token", token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (h *harness) login(email string) string {
	w, out := h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": "secret-pass"})
	assert.Equal(h.t, w.Code, http.StatusOK)
	return out["token"].(string)
}

func (h *harness) loginOperator() string {
	pending := h.login(operator.Email)
	w, _ := h.do(http.MethodPost, "/auth/verify-2fa", pending, map[string]string{"code": "123456"})
	assert.Equal(h.t, w.Code, http.StatusOK)
	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out["token"].(string)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	w, out := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, out["status"], "ok")
	assert.NotEqual(t, w.Header().Get("X-Request-ID"), "")
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name  string
		token string
	}{
		{"anonymous", ""},
		{"signed in", h.login(students.Email)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, out := h.do(http.MethodGet, "/no/such/route", tt.token, nil)
			assert.Equal(t, w.Code, http.StatusNotFound)
			assert.Equal(t, out["error"], "NOT_FOUND")
		})
	}
}

func TestListOrders_UnknownStatusFilter(t *testing.T) {
	h := newHarness(t)
	token := h.login(students.Email)

	w, out := h.do(http.MethodGet, "/orders?status=shipped", token, nil)
	assert.Equal(t, w.Code, http.StatusBadRequest)
	assert.Equal(t, out["error"], "VALIDATION_ERROR")

	w, _ = h.do(http.MethodGet, "/orders?status=pending", token, nil)
	assert.Equal(t, w.Code, http.StatusOK)
}

func TestAuthenticationRequired(t *testing.T) {
	h := newHarness(t)

	w, out := h.do(http.MethodGet, "/stalls/3/cart", "", nil)
	assert.Equal(t, w.Code, http.StatusUnauthorized)
	assert.Equal(t, out["error"], "UNAUTHORIZED")

	w, _ = h.do(http.MethodGet, "/dashboard", "forged.token.value", nil)
	assert.Equal(t, w.Code, http.StatusUnauthorized)
}

func TestLogin_WrongPasswordPassesPlatformMessage(t *testing.T) {
	h := newHarness(t)
	w, out := h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "nobody@uni.test", "password": "x"})
	assert.Equal(t, w.Code, http.StatusUnauthorized)
	assert.Equal(t, out["message"], "Incorrect email or password")

	w, out = h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "not-an-email", "password": "x"})
	assert.Equal(t, w.Code, http.StatusBadRequest)
	assert.Equal(t, out["error"], "VALIDATION_ERROR")
}

func TestTwoFactorLogin(t *testing.T) {
	h := newHarness(t)

	w, out := h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": operator.Email, "password": "secret-pass"})
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, out["requires_2fa"], true)
	pending := out["token"].(string)

	w, _ = h.do(http.MethodGet, "/dashboard", pending, nil)
	assert.Equal(t, w.Code, http.StatusUnauthorized)

	w, out = h.do(http.MethodPost, "/auth/verify-2fa", pending, map[string]string{"code": "000000"})
	assert.Equal(t, w.Code, http.StatusUnauthorized)
	assert.Equal(t, out["message"], "Invalid 2FA code")

	w, out = h.do(http.MethodPost, "/auth/verify-2fa", pending, map[string]string{"code": "123456"})
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, out["requires_2fa"], false)
	assert.Equal(t, out["dashboard"], "food_stall")
	token := out["token"].(string)

	w, out = h.do(http.MethodGet, "/dashboard", token, nil)
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, out["kind"], "food_stall")
	assert.Equal(t, out["title"], "Food Stall Management")
}

func TestCartAndCheckout(t *testing.T) {
	h := newHarness(t)
	token := h.login(students.Email)

	for _, id := range []int{1, 2, 1} {
		w, _ := h.do(http.MethodPost, "/stalls/3/cart/items", token, map[string]int{"item_id": id})
		assert.Equal(t, w.Code, http.StatusOK)
	}

	w, out := h.do(http.MethodGet, "/stalls/3/cart", token, nil)
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, out["total"], 26.98)
	assert.Equal(t, out["item_count"], float64(3))
	assert.Equal(t, len(out["lines"].([]interface{})), 2)

	w, out = h.do(http.MethodPost, "/stalls/3/cart/items", token, map[string]int{"item_id": 3})
	assert.Equal(t, w.Code, http.StatusConflict)
	assert.Equal(t, out["error"], "ITEM_UNAVAILABLE")

	w, _ = h.do(http.MethodPost, "/stalls/3/cart/items", token, map[string]int{"item_id": 99})
	assert.Equal(t, w.Code, http.StatusNotFound)

	w, out = h.do(http.MethodPost, "/stalls/3/cart/checkout", token, nil)
	assert.Equal(t, w.Code, http.StatusCreated)
	assert.Equal(t, out["can_cancel"], true)
	assert.Equal(t, out["order"].(map[string]interface{})["total_amount"], 26.98)

	assert.Equal(t, len(h.platform.placed), 1)
	assert.Equal(t, h.platform.placed[0], models.CreateOrderRequest{
		StallID: 3,
		Items:   []models.OrderItemInput{{ItemID: 1, Quantity: 2}, {ItemID: 2, Quantity: 1}},
	})

	w, out = h.do(http.MethodGet, "/stalls/3/cart", token, nil)
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, len(out["lines"].([]interface{})), 0)

	w, out = h.do(http.MethodPost, "/stalls/3/cart/checkout", token, nil)
	assert.Equal(t, w.Code, http.StatusBadRequest)
	assert.Equal(t, out["error"], "EMPTY_CART")
}

func TestCartSetQuantity(t *testing.T) {
	h := newHarness(t)
	token := h.login(students.Email)

	h.do(http.MethodPost, "/stalls/3/cart/items", token, map[string]int{"item_id": 1})

	w, out := h.do(http.MethodPut, "/stalls/3/cart/items/1", token, map[string]int{"quantity": 4})
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, out["total"], 43.96)

	w, _ = h.do(http.MethodPut, "/stalls/3/cart/items/2", token, map[string]int{"quantity": 2})
	assert.Equal(t, w.Code, http.StatusNotFound)

	w, out = h.do(http.MethodPut, "/stalls/3/cart/items/1", token, map[string]int{"quantity": 0})
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, len(out["lines"].([]interface{})), 0)

	w, _ = h.do(http.MethodPut, "/stalls/3/cart/items/1", token, map[string]string{})
	assert.Equal(t, w.Code, http.StatusBadRequest)
}

func TestOrderStatusFlow(t *testing.T) {
	h := newHarness(t)
	student := h.login(students.Email)
	h.do(http.MethodPost, "/stalls/3/cart/items", student, map[string]int{"item_id": 1})
	w, _ := h.do(http.MethodPost, "/stalls/3/cart/checkout", student, nil)
	assert.Equal(t, w.Code, http.StatusCreated)

	w, _ = h.do(http.MethodPost, "/orders/100/advance", student, nil)
	assert.Equal(t, w.Code, http.StatusForbidden)

	op := h.loginOperator()
	w, out := h.do(http.MethodGet, "/orders/100", op, nil)
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, out["next_action"].(map[string]interface{})["label"], "Start Preparing")

	for _, want := range []string{"preparing", "ready", "completed"} {
		w, out = h.do(http.MethodPost, "/orders/100/advance", op, nil)
		assert.Equal(t, w.Code, http.StatusOK)
		assert.Equal(t, out["order"].(map[string]interface{})["status"], want)
	}
	assert.Equal(t, out["next_action"], nil)
	assert.Equal(t, h.platform.patches, 3)

	w, out = h.do(http.MethodPost, "/orders/100/advance", op, nil)
	assert.Equal(t, w.Code, http.StatusConflict)
	assert.Equal(t, out["error"], "INVALID_TRANSITION")
	assert.Equal(t, h.platform.patches, 3)

	w, _ = h.do(http.MethodDelete, "/orders/100", op, nil)
	assert.Equal(t, w.Code, http.StatusConflict)
}

func TestOrderRejectedByPlatformKeepsStatus(t *testing.T) {
	h := newHarness(t)
	student := h.login(students.Email)
	h.do(http.MethodPost, "/stalls/3/cart/items", student, map[string]int{"item_id": 2})
	h.do(http.MethodPost, "/stalls/3/cart/checkout", student, nil)

	op := h.loginOperator()
	h.do(http.MethodGet, "/orders/100", op, nil)

	// someone else moved the order on
	h.platform.mu.Lock()
	h.platform.orders[100].Status = models.StatusReady
	h.platform.mu.Unlock()

	w, out := h.do(http.MethodPost, "/orders/100/advance", op, nil)
	assert.Equal(t, w.Code, http.StatusBadRequest)
	assert.Equal(t, out["error"], "VALIDATION_ERROR")
	assert.Equal(t, out["message"], "Cannot change status from ready to preparing")
	assert.Equal(t, out["details"].(map[string]interface{})["from"], "pending")

	w, out = h.do(http.MethodGet, "/orders/100", op, nil)
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, out["order"].(map[string]interface{})["status"], "ready")
	assert.Equal(t, out["next_action"].(map[string]interface{})["label"], "Complete Order")
}

func TestCancelPendingOrder(t *testing.T) {
	h := newHarness(t)
	student := h.login(students.Email)
	h.do(http.MethodPost, "/stalls/3/cart/items", student, map[string]int{"item_id": 2})
	h.do(http.MethodPost, "/stalls/3/cart/checkout", student, nil)

	w, out := h.do(http.MethodDelete, "/orders/100", student, nil)
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, out["order"].(map[string]interface{})["status"], "cancelled")
	assert.Equal(t, out["can_cancel"], false)
}

func TestEventsRoleGuard(t *testing.T) {
	h := newHarness(t)
	student := h.login(students.Email)

	w, _ := h.do(http.MethodGet, "/events", student, nil)
	assert.Equal(t, w.Code, http.StatusOK)

	w, out := h.do(http.MethodPost, "/events", student, map[string]interface{}{"name": "Gala"})
	assert.Equal(t, w.Code, http.StatusForbidden)
	assert.Equal(t, out["error"], "FORBIDDEN")
}

func TestMenuItemsOwnStallOnly(t *testing.T) {
	h := newHarness(t)
	op := h.loginOperator()

	w, _ := h.do(http.MethodGet, "/stalls/3/menu-items", op, nil)
	assert.Equal(t, w.Code, http.StatusOK)

	w, _ = h.do(http.MethodPost, "/stalls/4/menu-items", op, map[string]interface{}{"name": "Tea", "price": 2.5, "category": "drinks"})
	assert.Equal(t, w.Code, http.StatusForbidden)

	w, out := h.do(http.MethodPost, "/stalls/3/menu-items", op, map[string]interface{}{"name": "Tea", "price": 2.555, "category": "drinks"})
	assert.Equal(t, w.Code, http.StatusBadRequest)
	assert.Equal(t, out["error"], "VALIDATION_ERROR")
}

func TestLogoutEndsSession(t *testing.T) {
	h := newHarness(t)
	token := h.login(students.Email)

	w, _ := h.do(http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, w.Code, http.StatusOK)

	w, _ = h.do(http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, w.Code, http.StatusUnauthorized)
}

// shopInProgress leaves a cart and a tracked order behind for the session.
func (h *harness) shopInProgress(token string) {
	w, _ := h.do(http.MethodPost, "/stalls/3/cart/items", token, map[string]int{"item_id": 1})
	assert.Equal(h.t, w.Code, http.StatusOK)
	w, _ = h.do(http.MethodPost, "/stalls/3/cart/checkout", token, nil)
	assert.Equal(h.t, w.Code, http.StatusCreated)
	w, _ = h.do(http.MethodPost, "/stalls/3/cart/items", token, map[string]int{"item_id": 2})
	assert.Equal(h.t, w.Code, http.StatusOK)

	assert.NotEqual(h.t, h.env.Carts.Len(), 0)
	assert.Equal(h.t, h.env.Orders.Len(), 1)
}

func TestExpiredSessionReleasesItsState(t *testing.T) {
	h := newHarness(t)
	token := h.login(students.Email)
	h.shopInProgress(token)

	claims, msg := helpers.ValidateToken("test-secret", token)
	assert.Equal(t, msg, "")
	ctx := context.Background()
	sess, err := h.env.Sessions.Get(ctx, claims.SessionID)
	assert.Equal(t, err, nil)
	sess.ExpiresAt = time.Now().Add(-time.Second)
	assert.Equal(t, h.env.Sessions.Save(ctx, sess), nil)

	w, _ := h.do(http.MethodGet, "/stalls/3/cart", token, nil)
	assert.Equal(t, w.Code, http.StatusUnauthorized)
	assert.Equal(t, h.env.Carts.Len(), 0)
	assert.Equal(t, h.env.Orders.Len(), 0)
}

func TestSweepEndsIdleSessions(t *testing.T) {
	h := newHarness(t)
	idle := h.login(students.Email)
	h.shopInProgress(idle)

	assert.Equal(t, h.env.Sweep(time.Now()), 0)
	assert.NotEqual(t, h.env.Carts.Len(), 0)

	assert.Equal(t, h.env.Sweep(time.Now().Add(2*time.Hour)), 1)
	assert.Equal(t, h.env.Carts.Len(), 0)
	assert.Equal(t, h.env.Orders.Len(), 0)

	w, _ := h.do(http.MethodGet, "/stalls/3/cart", idle, nil)
	assert.Equal(t, w.Code, http.StatusUnauthorized)
}

func TestWebSocketReceivesOrderEvents(t *testing.T) {
	h := newHarness(t)
	op := h.loginOperator()
	student := h.login(students.Email)

	srv := httptest.NewServer(h.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?token="+op, nil)
	assert.Equal(t, err, nil)
	defer conn.Close()
	for i := 0; i < 100 && h.env.Hub.Connections() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, h.env.Hub.Connections(), 1)

	read := func() controller.Message {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg controller.Message
		assert.Equal(t, conn.ReadJSON(&msg), nil)
		return msg
	}

	h.do(http.MethodPost, "/stalls/3/cart/items", student, map[string]int{"item_id": 1})
	h.do(http.MethodPost, "/stalls/3/cart/checkout", student, nil)
	msg := read()
	assert.Equal(t, msg.Event, controller.EventNewOrder)

	w, _ := h.do(http.MethodPost, "/orders/100/advance", op, nil)
	assert.Equal(t, w.Code, http.StatusOK)
	msg = read()
	assert.Equal(t, msg.Event, controller.EventOrderStatus)
	payload := msg.Payload.(map[string]interface{})
	assert.Equal(t, payload["old_status"], "pending")
	assert.Equal(t, payload["new_status"], "preparing")
}
