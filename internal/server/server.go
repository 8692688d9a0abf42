package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MohamedTawfiq30/dmorder/app/routes"
	"github.com/MohamedTawfiq30/dmorder/config"
	"github.com/MohamedTawfiq30/dmorder/pkg/cache"
	"github.com/MohamedTawfiq30/dmorder/pkg/database"
	"github.com/MohamedTawfiq30/dmorder/pkg/grpc"
	"github.com/MohamedTawfiq30/dmorder/pkg/logger"
	"github.com/MohamedTawfiq30/dmorder/pkg/metrics"
	"github.com/MohamedTawfiq30/dmorder/pkg/middleware"
	"github.com/MohamedTawfiq30/dmorder/pkg/reqid"
	"github.com/MohamedTawfiq30/dmorder/pkg/router"
	"github.com/MohamedTawfiq30/dmorder/pkg/storage"
)

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM, then
// drains in-flight requests. Redis and gRPC are optional; MongoDB is not.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close()

	// Ship logs to Mongo alongside stdout when a collection is named.
	if coll := config.MongoLogCollection(); coll != "" {
		logger.Attach(logger.NewMongoHandler(database.Collection(coll)))
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, storefront cache disabled", "error", err)
	}

	storage.Connect()

	r := router.New()
	r.Use(middleware.Recovery, reqid.Middleware(), middleware.Logger,
		metrics.Middleware(), middleware.CORS(middleware.DefaultCORSOptions()))
	if err := routes.RegisterAPI(r); err != nil {
		return err
	}

	if port := config.GRPCPort(); port != "" {
		srv, _, err := grpc.Start(port)
		if err != nil {
			return err
		}
		defer grpc.Stop(srv)
	}

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", httpSrv.Addr, "env", config.AppEnv())
		errCh <- httpSrv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}
