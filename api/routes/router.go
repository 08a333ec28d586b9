package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/boltfit/catalog-backend/api/controllers"
	authcontrollers "github.com/boltfit/catalog-backend/api/controllers/auth"
	"github.com/boltfit/catalog-backend/api/middleware"
	"github.com/boltfit/catalog-backend/internal/auth"
	products "github.com/boltfit/catalog-backend/internal/products"
	"github.com/boltfit/catalog-backend/pkg/config"
	"github.com/boltfit/catalog-backend/pkg/logger"
	"github.com/boltfit/catalog-backend/pkg/metrics"
	"github.com/boltfit/catalog-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gate auth.Authorizer,
	productService products.Service,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	readiness map[string]controllers.Pinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.CORS(cfg.CORS),
		chimw.StripSlashes,
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
	)

	loginLimit := passthrough
	idempotency := passthrough
	if redisClient != nil {
		loginPolicy := middleware.NewAuthRateLimitPolicy(
			"google-login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
		)
		loginLimit = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
		idempotency = middleware.Idempotency(redisClient, logg)
	}
	requireAdmin := middleware.RequireAdmin(gate, logg)

	r.Get("/", controllers.Root(cfg.App.Name))
	r.Get("/health", controllers.Health(cfg.App.Name))
	r.Get("/health/ready", controllers.HealthReady(readiness, logg))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))

	r.Route("/api/v1", func(r chi.Router) {
		r.With(loginLimit).Post("/auth/google-login", authcontrollers.GoogleLogin(gate, logg))
		r.With(requireAdmin).Get("/auth/me", authcontrollers.Me(logg))
		r.Post("/auth/logout", authcontrollers.Logout())

		r.Get("/products", controllers.ListProducts(productService, logg))
		r.Get("/products/meta/categories", controllers.ProductCategories(productService, logg))
		r.Get("/products/{id}", controllers.GetProduct(productService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.With(idempotency).Post("/products", controllers.CreateProduct(productService, logg))
			r.Put("/products/{id}", controllers.UpdateProduct(productService, logg))
			r.Delete("/products/{id}", controllers.DeleteProduct(productService, logg))
			r.Get("/admin/products", controllers.AdminListProducts(productService, logg))
		})
	})

	return r
}

func passthrough(next http.Handler) http.Handler {
	return next
}
