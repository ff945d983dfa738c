// Package client is the storefront's API client. It speaks the response
// envelope, carries the bearer token persisted by the cart storage, and
// hands the cart off to the order API at checkout.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/apperr"
	"storefront/cart"
	"storefront/models"
	"storefront/query"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	storage *cart.Storage
}

func New(baseURL string, storage *cart.Storage) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		storage: storage,
	}
}

type envelope struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Error      string            `json:"error"`
	Count      int               `json:"count"`
	Pagination *query.Pagination `json:"pagination"`
}

// do performs one API call and decodes the envelope. Failure envelopes come
// back as taxonomy errors keyed off the HTTP status; persisted state is
// never touched here.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) (*envelope, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.storage.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, apperr.Internal("malformed response from server")
	}
	if !env.Success {
		return nil, responseError(resp.StatusCode, env.Error)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, apperr.Internal("malformed response from server")
		}
	}
	return &env, nil
}

func responseError(status int, message string) error {
	if message == "" {
		message = "Something went wrong"
	}
	switch status {
	case http.StatusBadRequest:
		return apperr.Invalid("%s", message)
	case http.StatusUnauthorized:
		return apperr.Unauthorized("%s", message)
	case http.StatusForbidden:
		return apperr.Forbidden("%s", message)
	case http.StatusNotFound:
		return apperr.NotFound("%s", message)
	default:
		return apperr.Internal("%s", message)
	}
}

// FetchProducts lists the catalog. Filters use the server's query syntax,
// e.g. price[lte]=100 or sort=-rating.
func (c *Client) FetchProducts(ctx context.Context, filters url.Values) ([]models.Product, *query.Pagination, error) {
	path := "/api/products"
	if len(filters) > 0 {
		path += "?" + filters.Encode()
	}

	var products []models.Product
	env, err := c.do(ctx, http.MethodGet, path, nil, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, env.Pagination, nil
}

func (c *Client) FetchProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if _, err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// AuthUser is the register/login response payload.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthUser, error) {
	return c.authenticate(ctx, "/api/users/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthUser, error) {
	return c.authenticate(ctx, "/api/users/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, creds map[string]string) (*AuthUser, error) {
	var user AuthUser
	if _, err := c.do(ctx, http.MethodPost, path, creds, &user); err != nil {
		return nil, err
	}
	if err := c.storage.SetToken(user.Token); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout() {
	c.storage.ClearToken()
}

// CurrentUser fetches the caller's profile. A rejected token is discarded
// from storage, so the next call starts logged out.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		if apperr.Code(err) == apperr.EUNAUTHORIZED {
			c.storage.ClearToken()
		}
		return nil, err
	}
	return &user, nil
}

// OrderItemRequest and OrderRequest mirror the order creation payload.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type OrderRequest struct {
	Items           []OrderItemRequest     `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*models.Order, error) {
	var order models.Order
	if _, err := c.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) FetchOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if _, err := c.do(ctx, http.MethodGet, "/api/orders/"+id, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) FetchMyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if _, err := c.do(ctx, http.MethodGet, "/api/orders/user/myorders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// PaymentReceipt is the gateway acknowledgement forwarded to the pay
// endpoint.
type PaymentReceipt struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Payer      struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

func (c *Client) PayOrder(ctx context.Context, id string, receipt PaymentReceipt) (*models.Order, error) {
	var order models.Order
	if _, err := c.do(ctx, http.MethodPut, "/api/orders/"+id+"/pay", receipt, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) DeliverOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if _, err := c.do(ctx, http.MethodPut, "/api/orders/"+id+"/deliver", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Checkout hands the cart off to the order API and clears the persisted
// cart once the order is accepted. A failed checkout leaves the stored cart
// alone.
func (c *Client) Checkout(ctx context.Context, items cart.Items, address models.ShippingAddress, paymentMethod string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, apperr.Invalid("No order items")
	}

	req := OrderRequest{
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
	}
	for _, item := range items {
		req.Items = append(req.Items, OrderItemRequest{
			ProductID: item.Product.ID.Hex(),
			Quantity:  item.Quantity,
		})
	}

	order, err := c.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := cart.Save(c.storage, cart.Clear(items)); err != nil {
		return order, err
	}
	return order, nil
}
