package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/toomajBandad/MoonShop-Backend/pkg/middleware/auth"
)

type Deps struct {
	Users      *UserHTTP
	Products   *ProductHTTP
	Categories *CategoryHTTP
	Tags       *TagHTTP
	Carts      *CartHTTP
	Orders     *OrderHTTP
	Reviews    *ReviewHTTP
	JWTSecret  []byte
	// Ready reports whether backing stores answer; nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
			}
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewAuthMiddleware(d.JWTSecret)

	users := e.Group("/user")
	users.POST("/newUser", d.Users.Register)
	users.POST("/login", d.Users.Login)
	usersAuth := users.Group("", authMW.RequireAuth)
	usersAuth.GET("/me", d.Users.Me)
	usersAuth.GET("/all", d.Users.List)
	usersAuth.GET("/:id", d.Users.Get)
	usersAuth.PUT("/:id", d.Users.Update)
	usersAuth.PUT("/:id/password", d.Users.ChangePassword)
	usersAuth.DELETE("/:id", d.Users.Delete)

	products := e.Group("/product")
	products.GET("/all", d.Products.List)
	products.GET("/byId/:id", d.Products.Get)
	products.GET("/byCat/:catName", d.Products.ByCategory)
	products.GET("/byTag/:tagName", d.Products.ByTag)
	productsAdmin := products.Group("", authMW.RequireAdmin)
	productsAdmin.POST("", d.Products.Create)
	productsAdmin.PUT("/update/:id", d.Products.Update)
	productsAdmin.PUT("/asignTags/:id", d.Products.AssignTags)
	productsAdmin.DELETE("/:id", d.Products.Delete)

	categories := e.Group("/category")
	categories.GET("", d.Categories.List)
	categories.GET("/:id", d.Categories.Get)
	categoriesAdmin := categories.Group("", authMW.RequireAdmin)
	categoriesAdmin.POST("", d.Categories.Create)
	categoriesAdmin.POST("/relevel", d.Categories.Relevel)
	categoriesAdmin.PUT("/:id", d.Categories.Update)
	categoriesAdmin.DELETE("/:id", d.Categories.Delete)

	tags := e.Group("/tag")
	tags.GET("", d.Tags.List)
	tags.GET("/:id", d.Tags.Get)
	tagsAdmin := tags.Group("", authMW.RequireAdmin)
	tagsAdmin.POST("", d.Tags.Create)
	tagsAdmin.PUT("/:id", d.Tags.Update)
	tagsAdmin.DELETE("/:id", d.Tags.Delete)

	carts := e.Group("/cart", authMW.RequireAuth)
	carts.GET("/all", d.Carts.List, authMW.RequireAdmin)
	carts.GET("/cart/:id", d.Carts.Get)
	carts.GET("/user/:userId", d.Carts.ByUser)
	carts.POST("/add", d.Carts.Add)
	carts.PUT("/:userId", d.Carts.SetQuantity)
	carts.DELETE("/:id", d.Carts.Clear)

	orders := e.Group("/order", authMW.RequireAuth)
	orders.GET("/all", d.Orders.List, authMW.RequireAdmin)
	orders.GET("/order/:id", d.Orders.Get)
	orders.GET("/user/:userId", d.Orders.ByUser)
	orders.POST("/newOrder", d.Orders.Create)
	orders.POST("/add", d.Orders.Add)
	orders.PUT("/:userId", d.Orders.SetQuantity)
	orders.POST("/:id/pay", d.Orders.Pay)
	orders.DELETE("/:id", d.Orders.Delete, authMW.RequireAdmin)
	orders.PATCH("/:id/status", d.Orders.UpdateStatus, authMW.RequireAdmin)
	orders.POST("/:id/deliver", d.Orders.Deliver, authMW.RequireAdmin)

	reviews := e.Group("/review")
	reviews.GET("/all", d.Reviews.List)
	reviews.GET("/byId/:id", d.Reviews.Get)
	reviews.GET("/user/:userId", d.Reviews.ByUser)
	reviewsAuth := reviews.Group("", authMW.RequireAuth)
	reviewsAuth.POST("", d.Reviews.Create)
	reviewsAuth.PUT("/review/:id", d.Reviews.Update)
	reviewsAuth.DELETE("/:id", d.Reviews.Delete)
}
