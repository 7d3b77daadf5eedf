package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/nk_store/internal/config"
	"github.com/Skotchmaster/nk_store/internal/db"
	"github.com/Skotchmaster/nk_store/internal/domain"
	"github.com/Skotchmaster/nk_store/internal/feed"
	"github.com/Skotchmaster/nk_store/internal/httpserver"
	"github.com/Skotchmaster/nk_store/internal/logging"
	authmw "github.com/Skotchmaster/nk_store/internal/middleware/auth"
	"github.com/Skotchmaster/nk_store/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/nk_store/internal/middleware/logging"
	"github.com/Skotchmaster/nk_store/internal/notify"
	"github.com/Skotchmaster/nk_store/internal/repo"
	"github.com/Skotchmaster/nk_store/internal/search"
	"github.com/Skotchmaster/nk_store/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustOneOf(cfg.DBDriver, "DB_DRIVER", db.DriverPostgres, db.DriverPQ, db.DriverSQLite)
	config.MustOneOf(cfg.CartStore, "CART_STORE", "db", "redis")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	store := &repo.GormRepo{DB: gdb}
	if n, err := store.PurgeExpiredCarts(context.Background()); err != nil {
		logger.Warn("purge_carts_failed", "error", err)
	} else if n > 0 {
		logger.Info("purged_expired_carts", "count", n)
	}

	var carts service.CartStore = store
	if cfg.CartStore == "redis" {
		config.MustNonEmpty(cfg.RedisAddr, "REDIS_ADDR")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := repo.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		carts = &repo.RedisCartStore{Client: rdb, Prefix: cfg.ServiceName + ":"}
	}

	var publisher notify.Publisher = &notify.LogPublisher{Logger: logger}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := notify.NewProducer(cfg.KafkaBrokers, cfg.KafkaNotifyTopic)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		publisher = p
	}
	defer publisher.Close()

	catalog := &service.CatalogService{Repo: store, MaxAttempts: cfg.StockTxMaxAttempts}
	if cfg.ESURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		es, err := search.NewClient(ctx, search.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		cancel()
		if err != nil {
			logger.Warn("search_disabled", "reason", "elasticsearch unreachable", "error", err)
		} else {
			catalog.Index = &search.Index{ES: es, Name: cfg.ESIndex}
		}
	}

	hub := feed.NewHub(logger)
	users := &service.UserService{Repo: store, SuperAdminEmail: cfg.SuperAdminEmail}
	cartSvc := &service.CartService{
		Repo:   store,
		Store:  carts,
		TTL:    cfg.CartTTL,
		Policy: domain.ShippingPolicy{FreeThreshold: cfg.FreeShippingThreshold, Fee: cfg.FlatShippingFee},
		Prefix: service.CartPrefixUser,
	}
	bills := &service.CartService{Repo: store, Store: carts, TTL: cfg.CartTTL, Prefix: service.CartPrefixPOS}
	coupons := &service.CouponService{Repo: store}
	recon := &service.Reconciler{
		Repo:        store,
		MaxAttempts: cfg.StockTxMaxAttempts,
		Concurrency: cfg.ReconcileConcurrency,
	}
	orders := &service.OrderService{
		Repo:      store,
		Carts:     cartSvc,
		Coupons:   coupons,
		Inventory: recon,
		Notifier:  &notify.OrderNotifier{Users: store, Publisher: publisher},
		Feed:      hub,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(csrf.Middleware(csrf.Config{AuthCookie: authmw.AccessCookie}))

	httpserver.Register(e, &httpserver.Deps{
		Catalog: &httpserver.CatalogHTTP{Svc: catalog},
		Cart:    &httpserver.CartHTTP{Svc: cartSvc},
		Bill:    &httpserver.CartHTTP{Svc: bills},
		Orders:  &httpserver.OrderHTTP{Svc: orders},
		POS:     &httpserver.POSHTTP{Svc: &service.BillingService{Orders: orders, Bills: bills}},
		Coupons: &httpserver.CouponHTTP{Svc: coupons},
		Users:   &httpserver.UserHTTP{Svc: users},
		Admin:   &httpserver.AdminHTTP{Reports: &service.ReportService{Repo: store}, Inventory: recon, Feed: hub},

		Categories: &httpserver.CategoryHTTP{Svc: &service.CategoryService{Repo: store}},
		Reviews:    &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: store, MaxAttempts: cfg.StockTxMaxAttempts}},
		Inquiries:  &httpserver.InquiryHTTP{Svc: &service.InquiryService{Repo: store}},
		Wishlist:   &httpserver.WishlistHTTP{Svc: &service.WishlistService{Repo: store}},

		Auth: authmw.New(cfg.JWTSecret, users),
		Ready: func() error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return sqlDB.PingContext(ctx)
		},
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = db.Close(gdb)

	logger.Info("server_stopped")
}
