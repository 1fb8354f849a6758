package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_backend/internal/tokens"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	UserHandler    *UserHTTP
	ProductHandler *ProductHTTP
	BasketHandler  *BasketHTTP
	JWTSecret      []byte
	UploadDir      string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Static("/uploads", d.UploadDir)

	authMW := tokens.RequireLogin(d.JWTSecret)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.LogOut)

	api.GET("/users/:id", d.UserHandler.GetUser)
	api.PATCH("/users/:id", d.UserHandler.UpdateProfile, authMW)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, authMW)
	products.PATCH("/:id", d.ProductHandler.PatchProduct, authMW)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, authMW)

	basket := api.Group("/basket", authMW)
	basket.GET("", d.BasketHandler.GetBasket)
	basket.POST("", d.BasketHandler.AddToBasket)
	basket.DELETE("/:product_id", d.BasketHandler.DeleteFromBasket)
	basket.DELETE("", d.BasketHandler.ClearBasket)
}
