package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AyAchi-19/f1-store/internal/cart"
	"github.com/AyAchi-19/f1-store/internal/config"
	"github.com/AyAchi-19/f1-store/internal/db"
	"github.com/AyAchi-19/f1-store/internal/handlers"
	"github.com/AyAchi-19/f1-store/internal/logger"
	"github.com/AyAchi-19/f1-store/internal/middleware"
	"github.com/AyAchi-19/f1-store/internal/order"
	"github.com/AyAchi-19/f1-store/internal/ordersync"
	"github.com/AyAchi-19/f1-store/internal/product"
	"github.com/AyAchi-19/f1-store/internal/realtime"
	"github.com/AyAchi-19/f1-store/internal/user"

	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	// cart snapshots live in redis when an address is configured,
	// otherwise in process memory
	var snap cart.Snapshot = cart.NewMemorySnapshot()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.L().Fatal("redis unreachable", zap.Error(err))
		}
		snap = cart.NewRedisSnapshot(rdb)
	}
	carts := cart.NewManager(snap, cfg.CartNamespace)

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo)

	hub := realtime.NewHub()
	listener := realtime.NewListener(db.DSN(cfg), hub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
			logger.L().Error("change feed stopped", zap.Error(err))
		}
	}()

	// the admin dashboard's in-memory order views, kept in sync by the
	// change feed; subscribe before seeding so no event is lost
	adminSub := hub.Subscribe(order.AllOrders())
	syncer := ordersync.NewSyncer(orderRepo, seedOrderViews(ctx, orderRepo))
	go syncer.Run(ctx, adminSub.C)
	defer adminSub.Close()

	authH := &handlers.AuthHandler{Users: userSvc}
	profileH := &handlers.ProfileHandler{Users: userSvc}
	productH := &handlers.ProductHandler{Products: productSvc}
	cartH := &handlers.CartHandler{Carts: carts, Sessions: sessionStore}
	checkoutH := &handlers.CheckoutHandler{Orders: orderSvc, Carts: carts, Sessions: sessionStore}
	orderH := &handlers.OrderHandler{Orders: orderSvc}
	adminLiveH := &handlers.AdminLiveHandler{Syncer: syncer, Hub: hub}
	feedH := &handlers.FeedHandler{Hub: hub, Orders: orderSvc}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", authH.Register)
	mux.HandleFunc("POST /auth/login", authH.Login)
	mux.HandleFunc("POST /auth/logout", authH.Logout)

	mux.HandleFunc("GET /profile", profileH.Get)
	mux.HandleFunc("PUT /profile", profileH.Update)

	mux.HandleFunc("GET /products", productH.List)
	mux.HandleFunc("GET /products/{id}", productH.Get)
	mux.HandleFunc("GET /category/{slug}", productH.ByCategory)
	mux.HandleFunc("POST /admin/products", productH.Create)
	mux.HandleFunc("PUT /admin/products/{id}", productH.Update)
	mux.HandleFunc("DELETE /admin/products/{id}", productH.Delete)

	mux.HandleFunc("GET /cart", cartH.Get)
	mux.HandleFunc("POST /cart/items", cartH.Add)
	mux.HandleFunc("DELETE /cart/items", cartH.Remove)
	mux.HandleFunc("DELETE /cart", cartH.Clear)

	mux.HandleFunc("POST /checkout", checkoutH.Checkout)

	mux.HandleFunc("GET /orders", orderH.List)
	mux.HandleFunc("GET /orders/{id}", orderH.Detail)
	mux.HandleFunc("GET /admin/orders", orderH.AdminList)
	mux.HandleFunc("GET /admin/orders/live", adminLiveH.List)
	mux.HandleFunc("PATCH /admin/orders/{id}/status", orderH.UpdateStatus)
	mux.HandleFunc("GET /admin/stats", orderH.Stats)

	mux.HandleFunc("GET /orders/live", feedH.Feed)

	var handler http.Handler = mux
	handler = middleware.AuthMiddleware(handler)
	handler = middleware.RateLimitMiddleware(handler)
	handler = middleware.CORS(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)

	// no WriteTimeout: the order feed holds its connection open
	srv := &http.Server{
		Addr:        ":" + cfg.AppPort,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.L().Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("shutdown failed", zap.Error(err))
	}
}

// seedOrderViews loads the full dashboard view for every existing order.
// Failures degrade to an empty seed; the change feed fills the gap as
// orders move.
func seedOrderViews(ctx context.Context, repo order.Repository) []order.OrderView {
	orders, err := repo.GetOrders(ctx, order.AllOrders())
	if err != nil {
		logger.L().Warn("seeding order views failed", zap.Error(err))
		return nil
	}

	views := make([]order.OrderView, 0, len(orders))
	for _, o := range orders {
		view, err := repo.GetOrderView(ctx, o.ID)
		if err != nil {
			logger.L().Warn("seeding order view failed",
				zap.String("order_id", o.ID.String()), zap.Error(err))
			continue
		}
		views = append(views, *view)
	}
	return views
}
