package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adaezeodina/beautyhub-backend/api/controllers"
	"github.com/adaezeodina/beautyhub-backend/api/middleware"
	authsvc "github.com/adaezeodina/beautyhub-backend/internal/auth"
	cartsvc "github.com/adaezeodina/beautyhub-backend/internal/cart"
	"github.com/adaezeodina/beautyhub-backend/internal/media"
	productsvc "github.com/adaezeodina/beautyhub-backend/internal/products"
	reviewsvc "github.com/adaezeodina/beautyhub-backend/internal/reviews"
	vendorsvc "github.com/adaezeodina/beautyhub-backend/internal/vendors"
	"github.com/adaezeodina/beautyhub-backend/pkg/auth/session"
	"github.com/adaezeodina/beautyhub-backend/pkg/config"
	"github.com/adaezeodina/beautyhub-backend/pkg/db"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	"github.com/adaezeodina/beautyhub-backend/pkg/logger"
	"github.com/adaezeodina/beautyhub-backend/pkg/metrics"
	"github.com/adaezeodina/beautyhub-backend/pkg/redis"
	"github.com/adaezeodina/beautyhub-backend/pkg/storage/gcs"
)

// Deps bundles everything the router mounts. Nil optional members disable
// their routes or middleware rather than panic.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DBPinger    db.Pinger
	RedisClient *redis.Client
	GCSPinger   gcs.Pinger

	Sessions session.AccessSessionChecker

	AuthService     authsvc.Service
	RegisterService authsvc.RegisterService
	VendorService   vendorsvc.Service
	ProductService  productsvc.Service
	MediaService    media.Service
	CartService     cartsvc.Service
	ReviewService   reviewsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var redisPinger redis.Pinger
	if deps.RedisClient != nil {
		redisPinger = deps.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, redisPinger, deps.GCSPinger))
	})

	r.Handle("/metrics", promhttp.Handler())

	rateLimited := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if deps.RedisClient == nil {
			return middleware.AuthRateLimit(policy, nil, logg)
		}
		return middleware.AuthRateLimit(policy, deps.RedisClient, logg)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(rateLimited(registerPolicy)).
			Post("/register", controllers.AuthRegister(deps.RegisterService, deps.AuthService, logg))
		r.With(rateLimited(loginPolicy)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	// Public catalog.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.ProductService, logg))
		r.Get("/{productId}", controllers.ProductGet(deps.ProductService, logg))
	})

	// Review feeds are public; submitting one needs an identity.
	r.Route("/api/v1/professionals", func(r chi.Router) {
		r.Get("/{professionalId}/reviews", controllers.ReviewsList(deps.ReviewService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).
			Post("/{professionalId}/reviews", controllers.ReviewSubmit(deps.ReviewService, logg))
	})

	// Authenticated surface.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.CartService, logg))
			r.Delete("/", controllers.CartClear(deps.CartService, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
			r.Put("/items/{itemId}", controllers.CartUpdateItem(deps.CartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.CartService, logg))
		})

		r.Route("/v1/media", func(r chi.Router) {
			r.Get("/", controllers.MediaList(deps.MediaService, logg))
			r.Post("/presign", controllers.MediaPresign(deps.MediaService, logg))
			r.Post("/{mediaId}/confirm", controllers.MediaConfirm(deps.MediaService, logg))
		})

		r.Route("/v1/vendor", func(r chi.Router) {
			r.Use(middleware.RequireProfessional(logg))

			r.Post("/verification", controllers.VendorSubmitVerification(deps.VendorService, logg))
			r.Post("/reviews/{reviewId}/response", controllers.ReviewRespond(deps.ReviewService, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ProductListMine(deps.ProductService, logg))
				r.Post("/", controllers.ProductCreate(deps.ProductService, logg))
				r.Patch("/{productId}", controllers.ProductUpdate(deps.ProductService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(deps.ProductService, logg))
				r.Post("/{productId}/publish", controllers.ProductPublish(deps.ProductService, logg))
				r.Post("/{productId}/unpublish", controllers.ProductUnpublish(deps.ProductService, logg))
				r.Post("/{productId}/stock", controllers.ProductAdjustStock(deps.ProductService, logg))
			})
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(enums.RoleAdmin, logg))

		r.Route("/v1/vendors", func(r chi.Router) {
			r.Get("/pending", controllers.AdminPendingVendors(deps.VendorService, logg))
			r.Post("/{userId}/review", controllers.AdminReviewVendor(deps.VendorService, logg))
		})
	})

	return r
}
