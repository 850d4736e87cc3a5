package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"spacehive/config"
	"spacehive/cron"
	"spacehive/database"
	bookingRepoPkg "spacehive/database/repository/booking"
	couponRepoPkg "spacehive/database/repository/coupon"
	spaceRepoPkg "spacehive/database/repository/space"
	userRepoPkg "spacehive/database/repository/user"
	walletRepoPkg "spacehive/database/repository/wallet"
	"spacehive/handlers"
	"spacehive/middleware"
	"spacehive/routes"
	"spacehive/services/booking"
	"spacehive/services/coupon"
	"spacehive/services/events"
	"spacehive/services/notification"
	"spacehive/services/refund"
	"spacehive/services/tasks"
	"spacehive/services/wallet"
	"spacehive/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitRealtime()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	couponRepo := couponRepoPkg.NewMongoCouponRepo()
	spaceRepo := spaceRepoPkg.NewMongoSpaceRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	walletRepo := walletRepoPkg.NewMongoWalletRepo()

	// collaborators.
	notifier, err := notification.NewFCMGateway(userRepo, spaceRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification gateway: %v", err)
	}
	realtime := notification.NewRedisRealtimeGateway(utils.GetRealtimeClient())
	ledger := wallet.NewDefaultLedger(walletRepo)
	refundEngine := refund.NewDefaultPolicyEngine()
	jobQueue := tasks.NewAsynqJobQueue()

	// event bus and reactors.
	bus := events.NewBus()
	reactors := events.NewReactors(bookingRepo, spaceRepo, notifier, realtime, refundEngine, ledger, jobQueue)
	reactors.Register(bus)

	// services.
	couponService := coupon.NewDefaultCouponService(couponRepo)
	bookingService := booking.NewDefaultBookingService(
		bookingRepo,
		booking.NewRepoUserDirectory(userRepo),
		booking.NewRepoSpaceCatalog(spaceRepo),
		booking.NewDefaultPricingEngine(),
		couponService,
		bus,
		booking.PolicyFromConfig(),
	)

	// background commission worker.
	cron.InitCommissionWorker(ledger, notifier)

	// Assemble the handler bundle and register routes.
	handlerBundle := &handlers.HandlerBundle{
		Booking: handlers.NewBookingHandler(bookingService),
		Coupon:  handlers.NewCouponHandler(couponService),
		Payment: handlers.NewPaymentHandler(bus),
		Wallet:  handlers.NewWalletHandler(ledger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	// Let in-flight reactors finish before exiting.
	bus.Close()
	logger.Sugar().Info("main: server stopped gracefully")
}
