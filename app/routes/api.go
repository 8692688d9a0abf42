package routes

import (
	"net/http"
	"time"

	"github.com/MohamedTawfiq30/dmorder/app/controllers"
	"github.com/MohamedTawfiq30/dmorder/app/repositories"
	"github.com/MohamedTawfiq30/dmorder/app/services"
	"github.com/MohamedTawfiq30/dmorder/pkg/metrics"
	"github.com/MohamedTawfiq30/dmorder/pkg/middleware"
	"github.com/MohamedTawfiq30/dmorder/pkg/response"
	"github.com/MohamedTawfiq30/dmorder/pkg/router"
	"github.com/MohamedTawfiq30/dmorder/pkg/storage"
)

// RegisterAPI wires every route. Construction is eager: repositories need a
// live database connection, so this runs after the bootstrap connects.
func RegisterAPI(r *router.Router) error {
	sellerRepo := repositories.NewSellerRepository()
	productRepo := repositories.NewProductRepository()
	orderRepo := repositories.NewOrderRepository()
	settingsRepo := repositories.NewSettingsRepository()

	authSvc := services.NewAuthService(sellerRepo)
	productSvc := services.NewProductService(productRepo, settingsRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo, storage.Default())
	liveSvc := services.NewLiveService(orderRepo)
	settingsSvc := services.NewSettingsService(settingsRepo, storage.Default())

	authController := controllers.NewAuthController(authSvc)
	productController := controllers.NewProductController(productSvc)
	storefrontController := controllers.NewStorefrontController(productSvc, orderSvc)
	orderController := controllers.NewOrderController(orderSvc)
	dashboardController := controllers.NewDashboardController(orderSvc, liveSvc)
	settingsController := controllers.NewSettingsController(settingsSvc)
	graphqlController, err := controllers.NewGraphQLController(productSvc, orderSvc)
	if err != nil {
		return err
	}

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	// Buyer storefront. Public, rate limited on placement.
	store := r.Group("/o")
	store.Get("/{slug}", "storefront.show", storefrontController.Show)
	store.Post("/{slug}/orders", "storefront.place", storefrontController.Place,
		middleware.RateLimit(10, time.Minute))

	api := r.Group("/api")
	api.Post("/auth/register", "auth.register", authController.Register)
	api.Post("/auth/login", "auth.login", authController.Login)

	protected := api.Group("", middleware.Auth)

	protected.Get("/products", "products.index", productController.Index)
	protected.Post("/products", "products.store", productController.Store)
	protected.Get("/products/{id}", "products.show", productController.Show)
	protected.Put("/products/{id}", "products.update", productController.Update)
	protected.Delete("/products/{id}", "products.destroy", productController.Destroy)

	protected.Get("/orders", "orders.index", orderController.Index)
	protected.Patch("/orders/{id}/complete", "orders.complete", orderController.Complete)

	protected.Get("/dashboard", "dashboard.show", dashboardController.Show)
	protected.Get("/dashboard/stream", "dashboard.stream", dashboardController.Stream)
	protected.Get("/dashboard/ws", "dashboard.ws", dashboardController.Socket)

	protected.Get("/settings", "settings.show", settingsController.Show)
	protected.Put("/settings", "settings.save", settingsController.Save)

	protected.Post("/graphql", "graphql.query", graphqlController.Query)

	return nil
}
