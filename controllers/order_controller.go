package controllers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/apperr"
	"storefront/cart"
	"storefront/httpx"
	"storefront/models"
	"storefront/store"
)

type OrderController struct {
	Orders   store.OrderStore
	Products store.ProductStore
}

func NewOrderController(orders store.OrderStore, products store.ProductStore) *OrderController {
	return &OrderController{Orders: orders, Products: products}
}

type createOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Items           []createOrderItem      `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// Create handles POST /api/orders. Line items are revalidated against the
// catalog and unit prices are snapshotted server-side; client-computed
// prices are never trusted.
func (oc *OrderController) Create(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	var body createOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httpx.Fail(c, apperr.Invalid("Invalid request body"))
		return
	}
	if len(body.Items) == 0 {
		httpx.Fail(c, apperr.Invalid("No order items"))
		return
	}

	items := make([]models.OrderItem, 0, len(body.Items))
	lines := cart.Items{}
	for _, reqItem := range body.Items {
		if reqItem.Quantity < 1 {
			httpx.Fail(c, apperr.Invalid("Quantity must be at least 1"))
			return
		}

		product, err := oc.Products.Get(c.Request.Context(), reqItem.ProductID)
		if err != nil {
			if apperr.Code(err) == apperr.ENOTFOUND {
				err = apperr.Invalid("Product %s not found", reqItem.ProductID)
			}
			httpx.Fail(c, err)
			return
		}
		if reqItem.Quantity > product.Stock {
			httpx.Fail(c, apperr.Invalid("Not enough stock for %s, available: %d", product.Name, product.Stock))
			return
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  reqItem.Quantity,
			Price:     product.Price,
		})
		lines = cart.Add(lines, *product, reqItem.Quantity)
	}

	summary := cart.Summarize(lines)
	order := models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: body.ShippingAddress,
		PaymentMethod:   body.PaymentMethod,
		TaxPrice:        summary.Tax.InexactFloat64(),
		ShippingPrice:   summary.Shipping.InexactFloat64(),
		TotalPrice:      summary.Total.InexactFloat64(),
	}

	if err := oc.Orders.Create(c.Request.Context(), &order); err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.Created(c, order)
}

// Get handles GET /api/orders/:id. Only the owning user or an admin may
// read an order.
func (oc *OrderController) Get(c *gin.Context) {
	order, err := oc.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	if err := authorizeOwner(c, order); err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, order)
}

// MyOrders handles GET /api/orders/user/myorders, scoped to the caller.
func (oc *OrderController) MyOrders(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	orders, err := oc.Orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.Collection(c, orders, len(orders), nil)
}

type payOrderRequest struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Payer      struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

// Pay handles PUT /api/orders/:id/pay for the owner or an admin. Repeat
// calls re-stamp paidAt; there is no distinct already-paid error.
func (oc *OrderController) Pay(c *gin.Context) {
	order, err := oc.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	if err := authorizeOwner(c, order); err != nil {
		httpx.Fail(c, err)
		return
	}

	var body payOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httpx.Fail(c, apperr.Invalid("Invalid payment result"))
		return
	}

	updated, err := oc.Orders.MarkPaid(c.Request.Context(), c.Param("id"), models.PaymentResult{
		ID:           body.ID,
		Status:       body.Status,
		UpdateTime:   body.UpdateTime,
		EmailAddress: body.Payer.EmailAddress,
	})
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, updated)
}

func callerID(c *gin.Context) (primitive.ObjectID, error) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		return primitive.NilObjectID, apperr.Unauthorized("Invalid or expired token")
	}
	return userID, nil
}

func authorizeOwner(c *gin.Context, order *models.Order) error {
	if order.UserID.Hex() != c.GetString("userId") && c.GetString("role") != models.RoleAdmin {
		return apperr.Forbidden("Not authorized to view this order")
	}
	return nil
}
