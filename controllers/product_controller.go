package controllers

import (
	"github.com/gin-gonic/gin"

	"storefront/httpx"
	"storefront/query"
	"storefront/store"
)

type ProductController struct {
	Products store.ProductStore
}

func NewProductController(products store.ProductStore) *ProductController {
	return &ProductController{Products: products}
}

// List handles GET /api/products with filter/select/sort/page/limit params.
func (pc *ProductController) List(c *gin.Context) {
	q, err := query.ParseValues(c.Request.URL.Query())
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	products, total, err := pc.Products.List(c.Request.Context(), q)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	w := query.Paginate(q.Page, q.Limit, total)
	httpx.Collection(c, products, len(products), &w.Pagination)
}

// Get handles GET /api/products/:id.
func (pc *ProductController) Get(c *gin.Context) {
	product, err := pc.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, product)
}
