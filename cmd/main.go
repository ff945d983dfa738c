package main

import (
	"github.com/gin-gonic/gin"

	"storefront/config"
	"storefront/controllers"
	"storefront/database"
	"storefront/httpx"
	"storefront/routes"
	"storefront/store"
)

func main() {

	config.LoadEnv()

	database.ConnectMongo()
	database.InitCollections()
	database.InitRedis()

	products := store.NewMongoProducts(database.ProductCollection)
	orders := store.NewMongoOrders(database.OrderCollection)
	users := store.NewMongoUsers(database.UserCollection)

	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(httpx.RequestID(), httpx.Logger())

	routes.RegisterRoutes(r,
		controllers.NewProductController(products),
		controllers.NewOrderController(orders, products),
		controllers.NewAuthController(users),
	)

	port := config.GetEnv("PORT", "8080")
	r.Run(":" + port)
}
