package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/cart/infra/slot"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	cpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/seed"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/mailto"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/rabbitmq"

	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	orderpg "github.com/dwikikusuma/storefront/internal/order/infra/postgres"

	"github.com/dwikikusuma/storefront/internal/storefront"
	"github.com/dwikikusuma/storefront/internal/storefront/delivery"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
		Text:      cfg.AppEnv == "dev",
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	var db *sql.DB
	if cfg.NeedsDatabase() {
		db = mustDB(ctx, log, cfg)
		defer db.Close()
	}

	// Catalog
	products := mustProducts(ctx, log, cfg, db)
	catalogRepo, err := memory.NewProductRepo(products)
	if err != nil {
		log.Error("invalid catalog", slog.Any("err", err))
		os.Exit(1)
	}
	catalogSvc := catalogapp.NewService(catalogRepo, cfg.ShopEmail)

	// Cart
	cartStore := slot.NewAdapter(mustSlot(ctx, log, cfg, db), cfg.CartSlotKey, log)
	cartSvc := cartapp.NewService(catalogSvc, cartStore, log)
	cartSvc.OnChange(func(c cartdomain.Cart) {
		log.Debug("cart changed", slog.Int("lines", c.Len()))
	})
	cartSvc.Hydrate(ctx)

	// Checkout
	messenger, closeMessenger := mustMessenger(log, cfg)
	defer closeMessenger()

	if db != nil {
		orderRepo := orderpg.NewOrderRepo(db)
		if err := orderRepo.EnsureSchema(ctx); err != nil {
			log.Error("order schema failed", slog.Any("err", err))
			os.Exit(1)
		}
		messenger = checkoutadapter.NewJournalingMessenger(messenger, orderapp.NewService(orderRepo), log)
	}

	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceReader(cartSvc),
		checkoutadapter.NewCatalogServiceReader(catalogSvc),
		messenger,
		cfg.ShopName,
		log,
	)

	ctrl := storefront.NewController(catalogSvc, cartSvc, checkoutSvc, log)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := delivery.NewRouter(delivery.NewHandler(ctrl, log), log)

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		os.Exit(1)
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("storefront", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		healthSrv.Shutdown()

		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()

		if err := httpServer.Shutdown(stopCtx); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopCtx.Done():
			log.Warn("graceful stop timeout, forcing stop")
			grpcServer.Stop()
		case <-stopped:
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func mustDB(ctx context.Context, log *slog.Logger, cfg config.Config) *sql.DB {
	db, err := postgres.Open(ctx, postgres.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	return db
}

func mustProducts(ctx context.Context, log *slog.Logger, cfg config.Config, db *sql.DB) []catalogdomain.Product {
	var (
		products []catalogdomain.Product
		err      error
		source   string
	)

	switch {
	case cfg.CatalogFromDB:
		source = "postgres"
		products, err = cpg.LoadProducts(ctx, db)
	case cfg.CatalogFile != "":
		source = cfg.CatalogFile
		products, err = seed.Load(cfg.CatalogFile)
	default:
		source = "builtin"
		products = memory.DefaultProducts()
	}
	if err != nil {
		log.Error("catalog load failed", slog.String("source", source), slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("catalog loaded", slog.String("source", source), slog.Int("products", len(products)))
	return products
}

func mustSlot(ctx context.Context, log *slog.Logger, cfg config.Config, db *sql.DB) slot.Slot {
	switch cfg.CartStore {
	case config.CartStoreFile:
		fs, err := slot.NewFileSlot(cfg.CartDir)
		if err != nil {
			log.Error("cart dir unavailable", slog.String("dir", cfg.CartDir), slog.Any("err", err))
			os.Exit(1)
		}
		return fs
	case config.CartStorePostgres:
		repo := cartpg.NewSlotRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Error("cart schema failed", slog.Any("err", err))
			os.Exit(1)
		}
		return repo
	default:
		return slot.NewMemorySlot()
	}
}

func mustMessenger(log *slog.Logger, cfg config.Config) (checkoutapp.Messenger, func()) {
	if cfg.CheckoutTransport != config.TransportRabbitMQ {
		return mailto.NewMessenger(cfg.ShopEmail), func() {}
	}

	conn, err := rabbitmq.Dial(cfg.AMQPURL, cfg.AMQPQueue)
	if err != nil {
		log.Error("rabbitmq unavailable", slog.Any("err", err))
		os.Exit(1)
	}

	closeFn := func() {
		if err := conn.Close(); err != nil {
			log.Warn("rabbitmq close", slog.Any("err", err))
		}
	}
	return rabbitmq.NewPublisher(conn.Channel(), cfg.AMQPQueue), closeFn
}
