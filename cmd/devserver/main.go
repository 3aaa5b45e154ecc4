package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/papertrade/tradedash/internal/devserver"
	"github.com/papertrade/tradedash/pkg/logger"
)

func main() {
	// Load .env (best-effort). If missing, fall back to real env vars.
	_ = godotenv.Load()

	getenv := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}

	var (
		listenAddr = flag.String("listen", getenv("TRADEDASH_DEV_LISTEN", ":8080"), "HTTP listen address")
		logLevel   = flag.String("log-level", getenv("TRADEDASH_LOG_LEVEL", "info"), "log level")
	)
	flag.Parse()

	if err := logger.Init(logger.Config{Level: *logLevel, Console: true}); err != nil {
		logrus.Fatalf("init logging: %v", err)
	}

	book := devserver.NewBook()
	httpSrv := &http.Server{
		Addr:              *listenAddr,
		Handler:           devserver.NewRouter(book),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logrus.Infof("dev backend listening on %s", *listenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Errorf("http server error: %v", err)
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-stopCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)

	logrus.Info("dev backend stopped")
}
