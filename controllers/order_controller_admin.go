package controllers

import (
	"github.com/gin-gonic/gin"

	"storefront/httpx"
)

// ListAll handles GET /api/orders (admin).
func (oc *OrderController) ListAll(c *gin.Context) {
	orders, err := oc.Orders.ListAll(c.Request.Context())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.Collection(c, orders, len(orders), nil)
}

// Deliver handles PUT /api/orders/:id/deliver (admin). Like Pay, it is
// idempotent in effect and simply re-stamps deliveredAt on repeat calls.
func (oc *OrderController) Deliver(c *gin.Context) {
	updated, err := oc.Orders.MarkDelivered(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, updated)
}
