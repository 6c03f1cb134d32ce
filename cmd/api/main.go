package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/adaezeodina/beautyhub-backend/api/routes"
	"github.com/adaezeodina/beautyhub-backend/internal/auth"
	"github.com/adaezeodina/beautyhub-backend/internal/cart"
	"github.com/adaezeodina/beautyhub-backend/internal/media"
	products "github.com/adaezeodina/beautyhub-backend/internal/products"
	"github.com/adaezeodina/beautyhub-backend/internal/reviews"
	"github.com/adaezeodina/beautyhub-backend/internal/users"
	"github.com/adaezeodina/beautyhub-backend/internal/vendors"
	"github.com/adaezeodina/beautyhub-backend/pkg/auth/session"
	"github.com/adaezeodina/beautyhub-backend/pkg/config"
	"github.com/adaezeodina/beautyhub-backend/pkg/db"
	"github.com/adaezeodina/beautyhub-backend/pkg/logger"
	"github.com/adaezeodina/beautyhub-backend/pkg/metrics"
	"github.com/adaezeodina/beautyhub-backend/pkg/migrate"
	"github.com/adaezeodina/beautyhub-backend/pkg/outbox"
	"github.com/adaezeodina/beautyhub-backend/pkg/redis"
	"github.com/adaezeodina/beautyhub-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing gcs", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	vendorService, err := vendors.NewService(vendors.ServiceParams{
		DB:     dbClient,
		Outbox: outboxService,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor service", err)
		os.Exit(1)
	}

	mediaRepo := media.NewRepository(dbClient.DB())
	mediaService, err := media.NewService(media.ServiceParams{
		Repo:     mediaRepo,
		DB:       dbClient,
		GCS:      gcsClient,
		Outbox:   outboxService,
		GCSCfg:   cfg.GCS,
		MediaCfg: cfg.Media,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	productRepo := products.NewRepository(dbClient.DB())
	productService, err := products.NewService(products.ServiceParams{
		Repo:    productRepo,
		DB:      dbClient,
		Vendors: userRepo,
		Media:   mediaRepo,
		Outbox:  outboxService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.ServiceParams{
		Repo:     reviews.NewRepository(dbClient.DB()),
		Accounts: userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Store:    cart.NewGormStore(dbClient.DB()),
		Resolver: products.NewResolver(productRepo),
		Cleared:  cart.NewOutboxClearedSink(dbClient, outboxService),
		Config:   cfg.Cart,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			Metrics:         httpMetrics,
			DBPinger:        dbClient,
			RedisClient:     redisClient,
			GCSPinger:       gcsClient,
			Sessions:        sessionManager,
			AuthService:     authService,
			RegisterService: registerService,
			VendorService:   vendorService,
			ProductService:  productService,
			MediaService:    mediaService,
			CartService:     cartService,
			ReviewService:   reviewService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
