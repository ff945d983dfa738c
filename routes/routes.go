package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/controllers"
	"storefront/middleware"
)

func RegisterRoutes(
	r *gin.Engine,
	pc *controllers.ProductController,
	oc *controllers.OrderController,
	ac *controllers.AuthController,
) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	api.Use(middleware.RateLimit())
	{
		users := api.Group("/users")
		{
			users.POST("/register", ac.Register)
			users.POST("/login", ac.Login)
			users.GET("/me", middleware.Auth(), ac.Me)
		}

		products := api.Group("/products")
		{
			products.GET("", pc.List)
			products.GET("/:id", pc.Get)

			admin := products.Group("")
			admin.Use(middleware.Auth(), middleware.AdminOnly())
			{
				admin.POST("", pc.Create)
				admin.PUT("/:id", pc.Update)
				admin.DELETE("/:id", pc.Delete)
			}
		}

		orders := api.Group("/orders")
		orders.Use(middleware.Auth())
		{
			orders.POST("", oc.Create)
			orders.GET("/user/myorders", oc.MyOrders)
			orders.GET("/:id", oc.Get)
			orders.PUT("/:id/pay", oc.Pay)

			orders.GET("", middleware.AdminOnly(), oc.ListAll)
			orders.PUT("/:id/deliver", middleware.AdminOnly(), oc.Deliver)
		}
	}
}
