// Package server serves the GraphQL API and a health check over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	"github.com/safar/teebay/internal/auth"
	"github.com/safar/teebay/internal/config"
)

type Server struct {
	echo   *echo.Echo
	cfg    config.ServerConfig
	logger *slog.Logger
}

func New(cfg config.ServerConfig, schema *graphql.Schema, issuer *auth.Issuer, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	registerMiddlewares(e, cfg.CORSAllowOrigins, issuer, logger)

	e.GET("/health", health)
	e.GET("/graphql", graphQL(schema))
	e.POST("/graphql", graphQL(schema))

	return &Server{echo: e, cfg: cfg, logger: logger}
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "port", s.cfg.Port)
		if err := s.echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func graphQL(schema *graphql.Schema) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req graphQLRequest

		if c.Request().Method == http.MethodGet {
			req.Query = c.QueryParam("query")
			req.OperationName = c.QueryParam("operationName")
			if vars := c.QueryParam("variables"); vars != "" {
				if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "variables must be a JSON object")
				}
			}
		} else if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid GraphQL request body")
		}

		if req.Query == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "query is required")
		}

		resp := schema.Exec(c.Request().Context(), req.Query, req.OperationName, req.Variables)
		return c.JSON(http.StatusOK, resp)
	}
}
