// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/boutique-storefront/internal/config"
	"github.com/your-org/boutique-storefront/internal/domain/account"
	"github.com/your-org/boutique-storefront/internal/domain/admin"
	"github.com/your-org/boutique-storefront/internal/domain/cart"
	"github.com/your-org/boutique-storefront/internal/domain/catalog"
	"github.com/your-org/boutique-storefront/internal/domain/checkout"
	"github.com/your-org/boutique-storefront/internal/domain/customer"
	"github.com/your-org/boutique-storefront/internal/domain/site"
	"github.com/your-org/boutique-storefront/internal/domain/wishlist"
	redisdb "github.com/your-org/boutique-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/boutique-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/boutique-storefront/internal/interfaces/http/middleware"
)

// Services bundles the domain services the routes are served by
type Services struct {
	Catalog   *catalog.Service
	Cart      *cart.Service
	Wishlist  *wishlist.Service
	Checkout  *checkout.Service
	Account   *account.Service
	Customer  *customer.Service
	Addresses *customer.AddressService
	Admin     *admin.Service
	Site      *site.Service
}

// Deps is everything SetupRoutes needs
type Deps struct {
	Services    *Services
	Tickets     *handlers.FlowTickets
	RedisClient *redisdb.Client
	Config      *config.Config
}

// SetupRoutes sets up all /api/v1 routes
func SetupRoutes(rg *gin.RouterGroup, deps *Deps) {
	SetupProductRoutes(rg, deps)
	SetupAuthRoutes(rg, deps)
	SetupCartRoutes(rg, deps)
	SetupWishlistRoutes(rg, deps)
	SetupCheckoutRoutes(rg, deps)
	SetupCustomerRoutes(rg, deps)
	SetupAdminRoutes(rg, deps)
	SetupPublicRoutes(rg, deps)
}

// inFlight guards mutating routes against double submission
func inFlight(deps *Deps) gin.HandlerFunc {
	return middleware.InFlightGuard(deps.RedisClient, deps.Config.Backend.SessionCookie, deps.Config.Server.RequestTimeout)
}

// SetupProductRoutes sets up catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, deps *Deps) {
	productHandler := handlers.NewProductHandler(deps.Services.Catalog)

	rg.GET("/home", productHandler.Home)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("/:id/reviews", middleware.RequireSession(), inFlight(deps), productHandler.SubmitReview)
	}
}

// SetupAuthRoutes sets up registration, login and recovery routes
func SetupAuthRoutes(rg *gin.RouterGroup, deps *Deps) {
	authHandler := handlers.NewAuthHandler(deps.Services.Account, deps.Tickets, deps.Config.Backend.SessionCookie)

	auth := rg.Group("/auth")
	auth.Use(middleware.RateLimit("auth", deps.Config.Security.AuthRateLimitPerMinute, 0, deps.RedisClient.GetClient()))
	{
		auth.POST("/register", inFlight(deps), authHandler.Register)
		auth.POST("/confirm-otp", inFlight(deps), authHandler.ConfirmOTP)
		auth.POST("/login", inFlight(deps), authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/session", middleware.RequireSession(), authHandler.Session)
		auth.POST("/forgot-password", inFlight(deps), authHandler.ForgotPassword)
		auth.POST("/verify-reset-otp", inFlight(deps), authHandler.VerifyResetOTP)
		auth.POST("/reset-password", inFlight(deps), authHandler.ResetPassword)
		auth.POST("/password-strength", authHandler.PasswordStrength)
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, deps *Deps) {
	cartHandler := handlers.NewCartHandler(deps.Services.Cart)

	cart := rg.Group("/cart")
	cart.Use(middleware.RequireSession(), inFlight(deps))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveCartItem)
	}
}

// SetupWishlistRoutes sets up wishlist routes
func SetupWishlistRoutes(rg *gin.RouterGroup, deps *Deps) {
	wishlistHandler := handlers.NewWishlistHandler(deps.Services.Wishlist)

	wishlist := rg.Group("/wishlist")
	wishlist.Use(middleware.RequireSession(), inFlight(deps))
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("", wishlistHandler.AddToWishlist)
		wishlist.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)
		wishlist.POST("/:productId/move-to-cart", wishlistHandler.MoveToCart)
	}
}

// SetupCheckoutRoutes sets up checkout routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, deps *Deps) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Services.Checkout, deps.Tickets)

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.RequireSession(), inFlight(deps))
	{
		checkout.POST("/address", checkoutHandler.SelectAddress)
		checkout.GET("/payment", checkoutHandler.GetPayment)
		checkout.POST("/finalize", checkoutHandler.Finalize)
	}
}

// SetupCustomerRoutes sets up the customer area routes
func SetupCustomerRoutes(rg *gin.RouterGroup, deps *Deps) {
	profileHandler := handlers.NewUserProfileHandler(deps.Services.Customer, deps.Services.Account, deps.Tickets)
	addressHandler := handlers.NewUserAddressHandler(deps.Services.Addresses)

	customer := rg.Group("/customer")
	customer.Use(middleware.RequireSession(), inFlight(deps))
	{
		customer.GET("/profile", profileHandler.GetProfile)
		customer.PUT("/profile", profileHandler.UpdateProfile)
		customer.POST("/profile/change-password", profileHandler.ChangePassword)
		customer.POST("/profile/change-email", profileHandler.ChangeEmail)
		customer.POST("/profile/change-email/finalize", profileHandler.FinalizeEmailChange)

		customer.GET("/addresses", addressHandler.GetAddresses)
		customer.POST("/addresses", addressHandler.CreateAddress)
		customer.PUT("/addresses/:id", addressHandler.UpdateAddress)
		customer.DELETE("/addresses/:id", addressHandler.DeleteAddress)

		customer.GET("/orders", profileHandler.GetOrders)
		customer.POST("/orders/:id/return", profileHandler.RequestReturn)

		customer.GET("/coupons", profileHandler.GetCoupons)
		customer.GET("/gift-cards", profileHandler.GetGiftCards)
		customer.POST("/gift-cards/redeem", profileHandler.RedeemGiftCard)
	}
}

// SetupAdminRoutes sets up the store owner's routes
func SetupAdminRoutes(rg *gin.RouterGroup, deps *Deps) {
	adminHandler := handlers.NewUserAdminHandler(deps.Services.Admin)

	admin := rg.Group("/admin")
	admin.Use(middleware.RequireSession(), inFlight(deps))
	{
		admin.GET("/status", adminHandler.GetStatus)

		admin.GET("/products", adminHandler.GetProducts)
		admin.POST("/products", adminHandler.CreateProduct)
		admin.PUT("/products/:id", adminHandler.UpdateProduct)
		admin.DELETE("/products/:id", adminHandler.DeleteProduct)

		admin.GET("/orders", adminHandler.GetOrders)
		admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
		admin.POST("/orders/:id/finalize-return", adminHandler.FinalizeReturn)

		admin.GET("/reviews", adminHandler.GetPendingReviews)
		admin.POST("/reviews/:id/approve", adminHandler.ApproveReview)
		admin.DELETE("/reviews/:id", adminHandler.DeleteReview)

		admin.GET("/contacts", adminHandler.GetContacts)
		admin.DELETE("/contacts/:id", adminHandler.DeleteContact)

		admin.PUT("/profile", adminHandler.UpdateCredentials)
	}
}

// SetupPublicRoutes sets up the contact, newsletter and policy routes
func SetupPublicRoutes(rg *gin.RouterGroup, deps *Deps) {
	siteHandler := handlers.NewSiteHandler(deps.Services.Site)

	public := rg.Group("/public")
	{
		public.POST("/contact", inFlight(deps), siteHandler.SubmitContact)
		public.POST("/newsletter/subscribe", inFlight(deps), siteHandler.Subscribe)
		public.GET("/policies", siteHandler.GetPolicies)
	}
}
