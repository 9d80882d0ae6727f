package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/common/version"
	"github.com/swoga/rpi-stats/config"
	"github.com/swoga/rpi-stats/sensor"
	"github.com/swoga/rpi-stats/web"
	"go.uber.org/zap"
)

const program = "rpi-stats"

var (
	sc  *config.SafeConfig
	log *zap.Logger
)

func main() {
	// parse command line args
	configFile := flag.String("config.file", "", "path to the YAML config, defaults apply if empty")
	debug := flag.Bool("debug", false, "enable debug logging")
	printVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *printVersion {
		fmt.Println(version.Print(program))
		os.Exit(0)
	}

	level := zap.InfoLevel
	if *debug {
		level = zap.DebugLevel
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	log, _ = zapConfig.Build()
	defer log.Sync()
	log.Info("starting rpi-stats", zap.String("version", version.Version), zap.String("revision", version.Revision))
	prometheus.MustRegister(versioncollector.NewCollector("rpi_stats"))

	// inital config load
	sc = config.New(*configFile)
	err := sc.LoadConfig()
	if err != nil {
		log.Fatal("error loading config", zap.Any("err", err))
	}

	// setup config reload
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	reloadRequest := make(chan chan error)
	go func() {
		for {
			var err error
			select {
			case <-hup:
				log.Debug("config reload triggered by SIGHUP")
				err = sc.LoadConfig()
			case reloadResult := <-reloadRequest:
				log.Debug("config reload triggered by API")
				err = sc.LoadConfig()
				reloadResult <- err
			}
			if err != nil {
				log.Error("error reloading config", zap.Any("err", err))
			} else {
				log.Info("reloaded config file")
			}
		}
	}()

	server := web.New(log, sensor.NewBoard(sc.Get), sc.Get)
	mux := server.Mux()
	mux.HandleFunc("POST /-/reload", func(w http.ResponseWriter, r *http.Request) {
		reloadResult := make(chan error)
		reloadRequest <- reloadResult
		err := <-reloadResult
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to reload config: %s", err), http.StatusInternalServerError)
		}
	})

	// start http server, listen and paths are not reloadable
	config := sc.Get()
	log.Info("starting http server",
		zap.String("listen", config.Listen),
		zap.String("metrics_path", config.MetricsPath),
		zap.String("probe_path", config.ProbePath),
		zap.Strings("temperature_command", config.Temperature.Command),
		zap.String("fan_glob", config.Fan.Glob),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = serve(ctx, config.Listen, web.RequestLogger(log, mux))
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("error starting http server", zap.Any("err", err))
	}
	log.Info("shutting down")
}

func serve(ctx context.Context, listenAddr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       30 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MiB
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
