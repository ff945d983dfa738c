package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/apperr"
	"storefront/models"
	"storefront/query"
)

// in-memory stores standing in for Mongo

type stubProducts struct {
	items     []models.Product
	lastQuery query.Query
}

func (s *stubProducts) List(_ context.Context, q query.Query) ([]models.Product, int64, error) {
	s.lastQuery = q
	total := int64(len(s.items))

	w := query.Paginate(q.Page, q.Limit, total)
	start := int(w.Skip)
	if start > len(s.items) {
		return []models.Product{}, total, nil
	}
	end := start + int(w.Take)
	if end > len(s.items) {
		end = len(s.items)
	}
	return s.items[start:end], total, nil
}

func (s *stubProducts) Get(_ context.Context, id string) (*models.Product, error) {
	for i := range s.items {
		if s.items[i].ID.Hex() == id {
			cp := s.items[i]
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("Product not found")
}

func (s *stubProducts) Create(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.items = append(s.items, *p)
	return nil
}

func (s *stubProducts) Update(_ context.Context, id string, u models.ProductUpdate) (*models.Product, error) {
	for i := range s.items {
		if s.items[i].ID.Hex() == id {
			if u.Name != nil {
				s.items[i].Name = *u.Name
			}
			if u.Price != nil {
				s.items[i].Price = *u.Price
			}
			if u.Stock != nil {
				s.items[i].Stock = *u.Stock
			}
			s.items[i].UpdatedAt = time.Now()
			cp := s.items[i]
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("Product not found")
}

func (s *stubProducts) Delete(_ context.Context, id string) error {
	for i := range s.items {
		if s.items[i].ID.Hex() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Product not found")
}

type stubOrders struct {
	orders map[string]*models.Order
}

func newStubOrders() *stubOrders {
	return &stubOrders{orders: map[string]*models.Order{}}
}

func (s *stubOrders) Create(_ context.Context, o *models.Order) error {
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now()
	cp := *o
	s.orders[o.ID.Hex()] = &cp
	return nil
}

func (s *stubOrders) Get(_ context.Context, id string) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, apperr.NotFound("Order not found")
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrders) ListAll(_ context.Context) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubOrders) MarkPaid(_ context.Context, id string, result models.PaymentResult) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, apperr.NotFound("Order not found")
	}
	now := time.Now()
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = &result
	cp := *o
	return &cp, nil
}

func (s *stubOrders) MarkDelivered(_ context.Context, id string) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, apperr.NotFound("Order not found")
	}
	now := time.Now()
	o.IsDelivered = true
	o.DeliveredAt = &now
	cp := *o
	return &cp, nil
}

// authAs bypasses JWT parsing and plants the caller identity directly, the
// same contract the real auth middleware provides.
func authAs(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("role", role)
		c.Next()
	}
}

type envelope struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Error      string            `json:"error"`
	Count      *int              `json:"count"`
	Pagination *query.Pagination `json:"pagination"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func init() {
	gin.SetMode(gin.TestMode)
}
