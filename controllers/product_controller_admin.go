package controllers

import (
	"github.com/gin-gonic/gin"

	"storefront/apperr"
	"storefront/httpx"
	"storefront/models"
)

// Create handles POST /api/products (admin).
func (pc *ProductController) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		httpx.Fail(c, apperr.Invalid("name, description, category and images are required"))
		return
	}
	if err := product.Validate(); err != nil {
		httpx.Fail(c, err)
		return
	}

	if err := pc.Products.Create(c.Request.Context(), &product); err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.Created(c, product)
}

// Update handles PUT /api/products/:id (admin). Only supplied fields change.
func (pc *ProductController) Update(c *gin.Context) {
	var body models.ProductUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		httpx.Fail(c, apperr.Invalid("Invalid request body"))
		return
	}
	if err := body.Validate(); err != nil {
		httpx.Fail(c, err)
		return
	}

	updated, err := pc.Products.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, updated)
}

// Delete handles DELETE /api/products/:id (admin).
func (pc *ProductController) Delete(c *gin.Context) {
	if err := pc.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, gin.H{})
}
