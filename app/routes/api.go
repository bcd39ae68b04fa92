// Package routes wires every HTTP endpoint to its controller.
package routes

import (
	"net/http"
	"time"

	"github.com/pmin574/pc-diamond-edge/app/controllers"
	"github.com/pmin574/pc-diamond-edge/app/graph"
	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/app/services"
	"github.com/pmin574/pc-diamond-edge/pkg/logger"
	"github.com/pmin574/pc-diamond-edge/pkg/metrics"
	"github.com/pmin574/pc-diamond-edge/pkg/middleware"
	"github.com/pmin574/pc-diamond-edge/pkg/rbac"
	"github.com/pmin574/pc-diamond-edge/pkg/response"
	"github.com/pmin574/pc-diamond-edge/pkg/router"
	"github.com/pmin574/pc-diamond-edge/pkg/ws"
)

// RegisterAPI mounts all routes. hub feeds the admin order dashboard
// and may be nil outside the server process.
func RegisterAPI(r *router.Router, hub *ws.Hub) {
	authController := controllers.NewAuthController()
	storefront := controllers.NewStorefrontController()
	catalog := controllers.NewCatalogController()
	orders := controllers.NewOrdersController(hub)
	users := controllers.NewUsersController()
	contact := controllers.NewContactController()

	r.HandleFunc("/metrics", metrics.Handler().ServeHTTP)
	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		health := map[string]interface{}{"status": "ok"}
		if hub != nil {
			health["ws_clients"] = hub.ClientCount()
		}
		response.Success(w, health)
	})

	api := r.Group("/api")

	// Public surface: auth, catalog browsing, checkout, contact form.
	// Login and register are guest-only; a valid token gets a 409.
	api.Post("/auth/register", "auth.register", authController.Register, middleware.OptionalAuth, rbac.Guest)
	api.Post("/auth/login", "auth.login", authController.Login, middleware.OptionalAuth, rbac.Guest)

	api.Get("/catalog/materials", "catalog.materials", storefront.Materials)
	api.Get("/catalog/materials/{id}", "catalog.material", storefront.Material)
	api.Get("/catalog/series/{id}", "catalog.series", storefront.Series)
	api.Get("/catalog/products/{id}", "catalog.product", storefront.Product)

	api.Post("/checkout", "checkout", orders.Checkout, middleware.OptionalAuth)
	api.Post("/contact", "contact.submit", contact.Submit, middleware.RateLimit(10, time.Minute))

	// GraphQL read-only catalog.
	if schema, err := graph.NewSchema(services.NewStorefrontService()); err != nil {
		logger.Error("routes: graphql schema", "error", err)
	} else {
		api.Post("/graphql", "graphql", graph.Handler(schema))
	}

	// Customer surface: requires a valid token.
	authed := api.Group("", middleware.Auth)
	authed.Get("/orders", "orders.mine", orders.MyOrders)

	// Admin console: token plus the admin role.
	admin := api.Group("/admin", middleware.Auth, rbac.HasRole(models.RoleAdmin))

	admin.Get("/materials", "admin.materials.list", catalog.ListMaterials)
	admin.Post("/materials", "admin.materials.create", catalog.CreateMaterial)
	admin.Get("/materials/{id}", "admin.materials.get", catalog.GetMaterial)
	admin.Put("/materials/{id}", "admin.materials.update", catalog.UpdateMaterial)
	admin.Delete("/materials/{id}", "admin.materials.delete", catalog.DeleteMaterial)
	admin.Get("/materials/{id}/series", "admin.materials.series", catalog.ListSeries)

	admin.Post("/series", "admin.series.create", catalog.CreateSeries)
	admin.Get("/series/{id}", "admin.series.get", catalog.GetSeries)
	admin.Put("/series/{id}", "admin.series.update", catalog.UpdateSeries)
	admin.Delete("/series/{id}", "admin.series.delete", catalog.DeleteSeries)
	admin.Get("/series/{id}/products", "admin.series.products", catalog.ListSeriesProducts)

	admin.Get("/products", "admin.products.list", catalog.ListProducts)
	admin.Post("/products", "admin.products.create", catalog.CreateProduct)
	admin.Get("/products/{id}", "admin.products.get", catalog.GetProduct)
	admin.Put("/products/{id}", "admin.products.update", catalog.UpdateProduct)
	admin.Patch("/products/{id}/toggle", "admin.products.toggle", catalog.ToggleProduct)
	admin.Delete("/products/{id}", "admin.products.delete", catalog.DeleteProduct)

	admin.Post("/images", "admin.images.upload", catalog.UploadImage)

	admin.Get("/orders", "admin.orders.list", orders.List)
	admin.Get("/orders/{id}", "admin.orders.get", orders.Get)
	admin.Patch("/orders/{id}/status", "admin.orders.status", orders.SetStatus)
	admin.Patch("/orders/{id}/payment", "admin.orders.payment", orders.SetPaymentStatus)

	admin.Get("/users", "admin.users.list", users.List)
	admin.Get("/users/{id}", "admin.users.get", users.Get)
	admin.Patch("/users/{id}/role", "admin.users.role", users.SetRole)

	admin.Get("/contact", "admin.contact.list", contact.List)
	admin.Patch("/contact/{id}/handled", "admin.contact.handled", contact.MarkHandled)

	// Live order feed for the admin dashboard.
	if hub != nil {
		admin.Get("/orders/feed", "admin.orders.feed", func(w http.ResponseWriter, r *http.Request) {
			ws.Upgrade(w, r, hub)
		})
	}
}
