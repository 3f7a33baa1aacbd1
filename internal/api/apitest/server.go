// Package apitest поднимает in-memory реализацию REST API магазина для тестов клиента.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

var taxRate = decimal.New(10, -2)

type account struct {
	password string
	user     domain.User
}

// Server — фейковый магазин: пользователи, JWT-подобные токены, каталог, серверная корзина и заказы.
type Server struct {
	srv *httptest.Server

	mu           sync.Mutex
	nextID       int64
	accounts     map[string]*account
	access       map[string]string
	refresh      map[string]string
	products     map[int64]domain.Product
	categories   map[int64]domain.Category
	carts        map[string]*domain.ServerCart
	orders       []domain.Order
	refreshCalls int
	failOrders   bool
}

// NewServer запускает сервер и останавливает его по завершении теста.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		nextID:     100,
		accounts:   make(map[string]*account),
		access:     make(map[string]string),
		refresh:    make(map[string]string),
		products:   make(map[int64]domain.Product),
		categories: make(map[int64]domain.Category),
		carts:      make(map[string]*domain.ServerCart),
	}
	s.srv = httptest.NewServer(http.StripPrefix("/api", s.routes()))
	t.Cleanup(s.srv.Close)
	return s
}

// URL — базовый адрес API (с префиксом /api).
func (s *Server) URL() string { return s.srv.URL + "/api" }

// Close останавливает сервер раньше конца теста.
func (s *Server) Close() { s.srv.Close() }

// AddUser регистрирует пользователя напрямую.
func (s *Server) AddUser(username, password string, staff bool) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, password, username+"@example.com", staff)
}

func (s *Server) addUserLocked(username, password, email string, staff bool) domain.User {
	s.nextID++
	u := domain.User{ID: s.nextID, Username: username, Email: email, IsStaff: staff}
	s.accounts[username] = &account{password: password, user: u}
	return u
}

// AddCategory добавляет категорию в каталог.
func (s *Server) AddCategory(name string) domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCategoryLocked(domain.CategoryInput{Name: name})
}

func (s *Server) addCategoryLocked(in domain.CategoryInput) domain.Category {
	s.nextID++
	c := domain.Category{ID: s.nextID, Name: in.Name, Description: in.Description, CreatedAt: time.Now().UTC()}
	s.categories[c.ID] = c
	return c
}

// AddProduct добавляет товар; нулевой ID назначается автоматически.
func (s *Server) AddProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.nextID++
		p.ID = s.nextID
	}
	if c, ok := s.categories[p.Category]; ok {
		p.CategoryName = c.Name
	}
	p.IsActive = true
	p.IsInStock = p.Stock > 0
	s.products[p.ID] = p
	return p
}

// ExpireAccessTokens делает все выданные access-токены недействительными.
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = make(map[string]string)
}

// RevokeRefreshTokens делает недействительными и refresh-токены.
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = make(map[string]string)
}

// FailOrderCreation заставляет POST /orders/ отвечать 500.
func (s *Server) FailOrderCreation(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOrders = fail
}

// RefreshCalls возвращает число обращений к /auth/refresh.
func (s *Server) RefreshCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

// Orders возвращает копию всех заказов.
func (s *Server) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Order(nil), s.orders...)
}

// Cart возвращает серверную корзину пользователя.
func (s *Server) Cart(username string) domain.ServerCart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCart(s.cartLocked(username))
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register/", s.handleRegister)
	mux.HandleFunc("POST /auth/login/", s.handleLogin)
	mux.HandleFunc("POST /auth/refresh", s.handleRefresh)
	mux.HandleFunc("GET /auth/profile/", s.authed(s.handleProfile))
	mux.HandleFunc("PATCH /auth/profile/", s.authed(s.handleProfile))

	mux.HandleFunc("GET /products/{$}", s.public(s.handleProducts))
	mux.HandleFunc("GET /products/low_stock/", s.staff(s.handleLowStock))
	mux.HandleFunc("GET /products/{id}/", s.public(s.handleProduct))
	mux.HandleFunc("DELETE /products/{id}/", s.staff(s.handleDeleteProduct))

	mux.HandleFunc("GET /categories/{$}", s.public(s.handleCategories))
	mux.HandleFunc("POST /categories/{$}", s.staff(s.handleCreateCategory))
	mux.HandleFunc("DELETE /categories/{id}/", s.staff(s.handleDeleteCategory))

	mux.HandleFunc("GET /cart/{$}", s.authed(s.handleCart))
	mux.HandleFunc("POST /cart/add_item/", s.authed(s.handleAddItem))
	mux.HandleFunc("PATCH /cart/update_item/", s.authed(s.handleUpdateItem))
	mux.HandleFunc("DELETE /cart/remove_item/", s.authed(s.handleRemoveItem))
	mux.HandleFunc("POST /cart/clear/", s.authed(s.handleClearCart))

	mux.HandleFunc("GET /orders/{$}", s.authed(s.handleOrders))
	mux.HandleFunc("POST /orders/{$}", s.authed(s.handleCreateOrder))
	mux.HandleFunc("GET /orders/analytics/", s.staff(s.handleAnalytics))
	mux.HandleFunc("GET /orders/{id}", s.authed(s.handleOrder))
	mux.HandleFunc("PATCH /orders/{id}/update_status/", s.staff(s.handleUpdateStatus))
	mux.HandleFunc("POST /orders/{id}/confirm_payment/", s.authed(s.handleConfirmPayment))
	return mux
}

type handler func(w http.ResponseWriter, r *http.Request, username string)

// userFor возвращает пользователя по bearer-токену; ok=false, если заголовок есть, но токен не действителен.
func (s *Server) userFor(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", true
	}
	token := strings.TrimPrefix(header, "Bearer ")
	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.access[token]
	return username, ok
}

func (s *Server) public(next handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := s.userFor(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
			return
		}
		next(w, r, username)
	}
}

func (s *Server) authed(next handler) http.HandlerFunc {
	return s.public(func(w http.ResponseWriter, r *http.Request, username string) {
		if username == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
			return
		}
		next(w, r, username)
	})
}

func (s *Server) staff(next handler) http.HandlerFunc {
	return s.authed(func(w http.ResponseWriter, r *http.Request, username string) {
		s.mu.Lock()
		isStaff := s.accounts[username].user.IsStaff
		s.mu.Unlock()
		if !isStaff {
			writeJSON(w, http.StatusForbidden, map[string]string{"detail": "You do not have permission to perform this action."})
			return
		}
		next(w, r, username)
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if !decode(w, r, &reg) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case reg.Username == "":
		writeJSON(w, http.StatusBadRequest, map[string][]string{"username": {"This field is required."}})
	case s.accounts[reg.Username] != nil:
		writeJSON(w, http.StatusBadRequest, map[string][]string{"username": {"A user with that username already exists."}})
	case reg.Password != reg.Password2:
		writeJSON(w, http.StatusBadRequest, map[string][]string{"password": {"Password fields didn't match."}})
	default:
		u := s.addUserLocked(reg.Username, reg.Password, reg.Email, false)
		writeJSON(w, http.StatusCreated, u)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accounts[req.Username]
	if acc == nil || acc.password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
		return
	}
	creds := domain.Credentials{AccessToken: uuid.NewString(), RefreshToken: uuid.NewString()}
	s.access[creds.AccessToken] = req.Username
	s.refresh[creds.RefreshToken] = req.Username
	writeJSON(w, http.StatusOK, creds)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshCalls++
	username, ok := s.refresh[req.Refresh]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}
	access := uuid.NewString()
	s.access[access] = username
	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, username string) {
	if r.Method == http.MethodPatch {
		var update domain.ProfileUpdate
		if !decode(w, r, &update) {
			return
		}
		s.mu.Lock()
		u := &s.accounts[username].user
		if update.Email != nil {
			u.Email = *update.Email
		}
		if update.FirstName != nil {
			u.FirstName = *update.FirstName
		}
		if update.LastName != nil {
			u.LastName = *update.LastName
		}
		s.mu.Unlock()
	}
	s.mu.Lock()
	u := s.accounts[username].user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]domain.User{"user": u})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request, _ string) {
	search := strings.ToLower(r.URL.Query().Get("search"))
	category, _ := strconv.ParseInt(r.URL.Query().Get("category"), 10, 64)

	s.mu.Lock()
	var out []domain.Product
	for _, p := range s.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), search) {
			continue
		}
		if category != 0 && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	s.mu.Unlock()

	sortByID(out)
	writeJSON(w, http.StatusOK, map[string]any{"count": len(out), "next": nil, "previous": nil, "results": out})
}

func (s *Server) handleLowStock(w http.ResponseWriter, _ *http.Request, _ string) {
	s.mu.Lock()
	out := []domain.Product{}
	for _, p := range s.products {
		if p.IsActive && p.Stock <= 10 {
			out = append(out, p)
		}
	}
	s.mu.Unlock()
	sortByID(out)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	p, found := s.products[id]
	s.mu.Unlock()
	if !found {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	_, found := s.products[id]
	delete(s.products, id)
	s.mu.Unlock()
	if !found {
		notFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request, _ string) {
	s.mu.Lock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		for _, p := range s.products {
			if p.Category == c.ID {
				c.ProductCount++
			}
		}
		out = append(out, c)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request, _ string) {
	var in domain.CategoryInput
	if !decode(w, r, &in) {
		return
	}
	if in.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"name": {"This field is required."}})
		return
	}
	s.mu.Lock()
	c := s.addCategoryLocked(in)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	_, found := s.categories[id]
	delete(s.categories, id)
	s.mu.Unlock()
	if !found {
		notFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) cartLocked(username string) *domain.ServerCart {
	c, ok := s.carts[username]
	if !ok {
		s.nextID++
		c = &domain.ServerCart{ID: s.nextID, TotalPrice: decimal.Zero}
		if acc := s.accounts[username]; acc != nil {
			c.User = acc.user.ID
		}
		s.carts[username] = c
	}
	return c
}

func cloneCart(c *domain.ServerCart) domain.ServerCart {
	out := *c
	out.Items = append([]domain.ServerCartItem(nil), c.Items...)
	return out
}

func recalc(c *domain.ServerCart) {
	total := decimal.Zero
	for i := range c.Items {
		item := &c.Items[i]
		item.Subtotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.Subtotal)
	}
	c.TotalPrice = total
}

func (s *Server) handleCart(w http.ResponseWriter, _ *http.Request, username string) {
	s.mu.Lock()
	c := cloneCart(s.cartLocked(username))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request, username string) {
	var req struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[req.ProductID]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
		return
	}
	c := s.cartLocked(username)
	idx := -1
	for i, item := range c.Items {
		if item.Product.ID == p.ID {
			idx = i
		}
	}
	quantity := req.Quantity
	if idx >= 0 {
		quantity += c.Items[idx].Quantity
	}
	if quantity > p.Stock {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Only %d items available in stock", p.Stock)})
		return
	}
	if idx >= 0 {
		c.Items[idx].Quantity = quantity
	} else {
		s.nextID++
		c.Items = append(c.Items, domain.ServerCartItem{ID: s.nextID, Product: p, Quantity: quantity})
	}
	recalc(c)
	writeJSON(w, http.StatusOK, cloneCart(c))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request, username string) {
	var req struct {
		ItemID   int64 `json:"item_id"`
		Quantity int   `json:"quantity"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(username)
	for i := range c.Items {
		if c.Items[i].ID != req.ItemID {
			continue
		}
		if req.Quantity > c.Items[i].Product.Stock {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Only %d items available in stock", c.Items[i].Product.Stock)})
			return
		}
		c.Items[i].Quantity = req.Quantity
		recalc(c)
		writeJSON(w, http.StatusOK, cloneCart(c))
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Item not found in cart"})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request, username string) {
	itemID, err := strconv.ParseInt(r.URL.Query().Get("item_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item_id is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(username)
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			recalc(c)
			writeJSON(w, http.StatusOK, cloneCart(c))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Item not found in cart"})
}

func (s *Server) handleClearCart(w http.ResponseWriter, _ *http.Request, username string) {
	s.mu.Lock()
	c := s.cartLocked(username)
	c.Items = nil
	recalc(c)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}

func (s *Server) handleOrders(w http.ResponseWriter, _ *http.Request, username string) {
	s.mu.Lock()
	acc := s.accounts[username]
	out := []domain.Order{}
	for _, o := range s.orders {
		if acc.user.IsStaff || o.User == acc.user.ID {
			out = append(out, o)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request, username string) {
	var req domain.CreateOrderRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOrders {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "order service unavailable"})
		return
	}
	c := s.cartLocked(username)
	if len(c.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Cart is empty"})
		return
	}

	acc := s.accounts[username]
	s.nextID++
	now := time.Now().UTC()
	order := domain.Order{
		ID:              s.nextID,
		User:            acc.user.ID,
		UserEmail:       acc.user.Email,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingZip:     req.ShippingZip,
		ShippingCountry: req.ShippingCountry,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range c.Items {
		s.nextID++
		order.Items = append(order.Items, domain.OrderItem{
			ID:          s.nextID,
			Product:     item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
			Subtotal:    item.Subtotal,
		})
		p := s.products[item.Product.ID]
		p.Stock -= item.Quantity
		p.IsInStock = p.Stock > 0
		s.products[p.ID] = p
	}
	order.TaxAmount = c.TotalPrice.Mul(taxRate)
	order.TotalAmount = c.TotalPrice.Add(order.TaxAmount)
	c.Items = nil
	recalc(c)

	s.orders = append(s.orders, order)
	writeJSON(w, http.StatusCreated, order)
}

// orderLocked ищет заказ, доступный пользователю.
func (s *Server) orderLocked(id int64, username string) *domain.Order {
	acc := s.accounts[username]
	for i := range s.orders {
		o := &s.orders[i]
		if o.ID == id && (acc.user.IsStaff || o.User == acc.user.ID) {
			return o
		}
	}
	return nil
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request, username string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	o := s.orderLocked(id, username)
	var out domain.Order
	if o != nil {
		out = *o
	}
	s.mu.Unlock()
	if o == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request, username string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid status"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orderLocked(id, username)
	if o == nil {
		notFound(w)
		return
	}
	o.Status = req.Status
	o.UpdatedAt = time.Now().UTC()
	writeJSON(w, http.StatusOK, *o)
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request, username string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orderLocked(id, username)
	if o == nil {
		notFound(w)
		return
	}
	o.PaymentStatus = domain.PaymentStatusCompleted
	o.Status = domain.OrderStatusProcessing
	o.UpdatedAt = time.Now().UTC()
	writeJSON(w, http.StatusOK, domain.PaymentConfirmation{Message: "Payment confirmed", OrderID: o.ID})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, _ *http.Request, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := domain.Analytics{TotalRevenue: decimal.Zero}
	byDay := make(map[string]*domain.DailySales)
	for _, o := range s.orders {
		a.TotalOrders++
		if o.Status == domain.OrderStatusPending {
			a.PendingOrders++
		}
		if o.PaymentStatus != domain.PaymentStatusCompleted {
			continue
		}
		a.TotalRevenue = a.TotalRevenue.Add(o.TotalAmount)
		day := o.CreatedAt.Format("2006-01-02")
		if byDay[day] == nil {
			byDay[day] = &domain.DailySales{Date: day, Revenue: decimal.Zero}
		}
		byDay[day].Revenue = byDay[day].Revenue.Add(o.TotalAmount)
		byDay[day].Orders++
	}
	for _, d := range byDay {
		a.DailySales = append(a.DailySales, *d)
	}
	sort.Slice(a.DailySales, func(i, j int) bool { return a.DailySales[i].Date < a.DailySales[j].Date })
	writeJSON(w, http.StatusOK, a)
}

func sortByID(products []domain.Product) {
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		notFound(w)
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error - " + err.Error()})
		return false
	}
	return true
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
