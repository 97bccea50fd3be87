package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rm-hull/retro-image-converter/internal"
	log "github.com/sirupsen/logrus"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

func NewRouter(defaults internal.Options, maxUploadBytes int64, debug bool) (*gin.Engine, error) {
	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		log.Warn("pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	if err := healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{}); err != nil {
		return nil, fmt.Errorf("failed to initialize healthcheck: %w", err)
	}

	handler := internal.NewConvertHandler(maxUploadBytes, defaults)
	v1 := r.Group("/v1")
	v1.POST("/retro", handler.Handle)

	return r, nil
}

func ApiServer(defaults internal.Options, port int, debug bool) error {
	internal.ShowVersion()
	internal.ProcessInfo()
	internal.EnvironmentVars()

	if err := defaults.Validate(); err != nil {
		return err
	}

	r, err := NewRouter(defaults, internal.DefaultMaxUploadBytes, debug)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: gzhttp.GzipHandler(r),
	}

	log.Infof("Starting HTTP API Server on port %d...", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP API Server failed to start on port %d: %w", port, err)
	}
	return nil
}
