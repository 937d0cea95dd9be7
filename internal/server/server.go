// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the search pipeline over HTTP. It owns the
// boundary concerns the pipeline stays free of: payload decoding, error
// to status-code mapping, CORS, metrics, and the run history.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/signal-scout/internal/history"
	"github.com/pdiddy/signal-scout/internal/orchestrate"
	"github.com/pdiddy/signal-scout/internal/pipeline"
	"github.com/pdiddy/signal-scout/internal/platform"
	"github.com/pdiddy/signal-scout/pkg/types"
)

// Server holds the boundary's dependencies.
type Server struct {
	cfg     types.PipelineConfig
	reg     *platform.Registry
	history *history.Store
	logger  *logrus.Logger
}

// New builds a Server. The history store may be nil, in which case runs
// are simply not recorded.
func New(cfg types.PipelineConfig, reg *platform.Registry, hist *history.Store, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{cfg: cfg, reg: reg, history: hist, logger: logger}
}

// Echo assembles the routes and middleware.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		s.logger.WithFields(logrus.Fields{
			"status": code,
			"method": req.Method,
			"path":   req.URL.Path,
		}).Error(err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]any{"error": msg})
		}
	}

	allowOrigins := s.cfg.Server.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/search", s.handleSearch)
	api.GET("/history", s.handleHistory)

	return e
}

// Run starts the server on the configured address.
func (s *Server) Run() error {
	return s.Echo().Start(s.cfg.Server.Addr)
}

func (s *Server) handleSearch(c echo.Context) error {
	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		searchesTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object")
	}

	start := time.Now()
	resp, err := pipeline.Handle(c.Request().Context(), payload, s.reg, s.cfg.Search, s.logger)
	searchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var (
			ve  *pipeline.ValidationError
			agg *orchestrate.AggregationError
		)
		switch {
		case errors.As(err, &ve):
			searchesTotal.WithLabelValues("invalid").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
		case errors.As(err, &agg):
			searchesTotal.WithLabelValues("unavailable").Inc()
			return echo.NewHTTPError(http.StatusBadGateway, agg.Error())
		default:
			searchesTotal.WithLabelValues("error").Inc()
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	searchesTotal.WithLabelValues("ok").Inc()

	if s.history != nil {
		// History is best effort; a write failure never fails the search.
		if err := s.history.Record(c.Request().Context(), resp); err != nil {
			s.logger.WithField("query", resp.Meta.Query).Warnf("recording history: %v", err)
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHistory(c echo.Context) error {
	if s.history == nil {
		return c.JSON(http.StatusOK, []history.Entry{})
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &limit); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
	}

	entries, err := s.history.List(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// Shutdown gracefully stops a running Echo instance.
func (s *Server) Shutdown(ctx context.Context, e *echo.Echo) error {
	return e.Shutdown(ctx)
}
