package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/nk_store/internal/middleware/auth"
)

type Deps struct {
	Catalog *CatalogHTTP
	Cart    *CartHTTP
	Bill    *CartHTTP
	Orders  *OrderHTTP
	POS     *POSHTTP
	Coupons *CouponHTTP
	Users   *UserHTTP
	Admin   *AdminHTTP

	Categories *CategoryHTTP
	Reviews    *ReviewHTTP
	Inquiries  *InquiryHTTP
	Wishlist   *WishlistHTTP

	Auth *authmw.Middleware
	// Ready reports whether the store is reachable.
	Ready func() error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api/v1")

	products := api.Group("/products")
	products.GET("", d.Catalog.GetProducts)
	products.GET("/search", d.Catalog.SearchProducts)
	products.GET("/:id", d.Catalog.GetProduct)
	products.GET("/:id/reviews", d.Reviews.List)
	api.GET("/categories", d.Categories.List)
	api.GET("/track/:id", d.Orders.TrackOrder)
	api.GET("/coupons/:code", d.Coupons.Validate)
	api.POST("/inquiries", d.Inquiries.Submit)

	user := api.Group("", d.Auth.RequireAuth)
	user.GET("/me", d.Users.Me)
	user.PUT("/me/settings", d.Users.UpdateSettings)
	user.PATCH("/me/profile", d.Users.UpdateProfile)
	user.POST("/me/addresses", d.Users.AddAddress)
	user.DELETE("/me/addresses/:id", d.Users.RemoveAddress)
	user.GET("/me/wishlist", d.Wishlist.List)
	user.POST("/me/wishlist/:product_id", d.Wishlist.Toggle)
	user.DELETE("/me/wishlist/:product_id", d.Wishlist.Remove)

	user.POST("/products/:id/reviews", d.Reviews.Add)
	user.PATCH("/reviews/:id", d.Reviews.Edit)
	user.DELETE("/reviews/:id", d.Reviews.Delete)

	user.GET("/cart", d.Cart.GetCart)
	user.POST("/cart/items", d.Cart.AddLine)
	user.PATCH("/cart/items/:key", d.Cart.SetQuantity)
	user.DELETE("/cart/items/:key", d.Cart.RemoveLine)
	user.DELETE("/cart", d.Cart.Clear)
	user.GET("/cart/quote", d.Orders.Quote)

	user.POST("/orders", d.Orders.Checkout)
	user.GET("/orders", d.Orders.MyOrders)
	user.GET("/orders/:id", d.Orders.GetOrder)
	user.POST("/orders/:id/cancel", d.Orders.CancelOrder)

	staff := api.Group("", d.Auth.RequireStaff)
	staff.GET("/pos/bill", d.Bill.GetCart)
	staff.POST("/pos/bill/items", d.Bill.AddLine)
	staff.PATCH("/pos/bill/items/:key", d.Bill.SetQuantity)
	staff.DELETE("/pos/bill/items/:key", d.Bill.RemoveLine)
	staff.DELETE("/pos/bill", d.Bill.Clear)
	staff.GET("/pos/bill/preview", d.POS.Preview)
	staff.POST("/pos/checkout", d.POS.Checkout)

	staff.GET("/admin/orders", d.Orders.ListOrders)
	staff.POST("/admin/orders/:id/ship", d.Orders.ShipOrder)
	staff.POST("/admin/orders/:id/deliver", d.Orders.DeliverOrder)
	staff.POST("/admin/orders/:id/cancel", d.Orders.CancelOrder)
	staff.GET("/admin/feed", d.Admin.OrderFeed)

	admin := api.Group("/admin", d.Auth.RequireAdmin)
	admin.POST("/products", d.Catalog.CreateProduct)
	admin.PATCH("/products/:id", d.Catalog.PatchProduct)
	admin.DELETE("/products/:id", d.Catalog.DeleteProduct)
	admin.POST("/products/reindex", d.Catalog.Reindex)

	admin.GET("/coupons", d.Coupons.List)
	admin.POST("/coupons", d.Coupons.Create)
	admin.PATCH("/coupons/:code", d.Coupons.SetActive)
	admin.DELETE("/coupons/:code", d.Coupons.Delete)

	admin.GET("/categories", d.Categories.ListAll)
	admin.POST("/categories", d.Categories.Create)
	admin.PATCH("/categories/:slug", d.Categories.SetActive)
	admin.DELETE("/categories/:slug", d.Categories.Delete)

	admin.GET("/reviews", d.Reviews.ListAll)
	admin.GET("/inquiries", d.Inquiries.List)
	admin.POST("/inquiries/:id/read", d.Inquiries.MarkRead)
	admin.DELETE("/inquiries/:id", d.Inquiries.Delete)

	admin.GET("/dashboard", d.Admin.Dashboard)
	admin.GET("/reports/:kind", d.Admin.Report)
	admin.GET("/users", d.Users.ListUsers)
	admin.PUT("/users/:id/role", d.Users.SetRole)
	admin.GET("/stock/failed", d.Admin.FailedMovements)
}
