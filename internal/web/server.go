/*
Package web exposes the application shell as a local JSON API for a browser
front end. It is meant to listen on a loopback address for a single user.

Routes:

	GET    /api/state                   full snapshot
	POST   /api/plan                    generate a marketing plan
	POST   /api/visual                  generate the product visual
	DELETE /api/visual                  cancel it
	POST   /api/logo                    generate a logo
	DELETE /api/logo                    cancel it
	GET    /api/history                 saved entries, newest first
	DELETE /api/history                 clear history
	GET    /api/history/export          history as .xlsx
	GET    /api/history/search?q=       keyword search over history
	POST   /api/history/:id/select      reopen an entry
	GET    /api/settings/email          saved email
	PUT    /api/settings/email          save email
	GET    /api/activity                activity log
	GET    /metrics                     counters (text, or ?format=json)
*/
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/khanglvm/marketing-support/internal/metrics"
	"github.com/khanglvm/marketing-support/internal/shell"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// Server wires the shell into an echo router.
type Server struct {
	echo    *echo.Echo
	app     *shell.App
	metrics *metrics.Registry
}

// New builds the router. reg may be nil.
func New(app *shell.App, reg *metrics.Registry) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	e.Use(RequestLogger(reg))

	s := &Server{echo: e, app: app, metrics: reg}

	api := e.Group("/api")
	api.GET("/state", s.state)
	api.POST("/plan", s.submit)
	api.POST("/visual", s.generateVisual)
	api.DELETE("/visual", s.cancelVisual)
	api.POST("/logo", s.generateLogo)
	api.DELETE("/logo", s.cancelLogo)
	api.GET("/history", s.listHistory)
	api.DELETE("/history", s.clearHistory)
	api.GET("/history/export", s.exportHistory)
	api.GET("/history/search", s.searchHistory)
	api.POST("/history/:id/select", s.selectHistory)
	api.GET("/settings/email", s.getEmail)
	api.PUT("/settings/email", s.putEmail)
	api.GET("/activity", s.activity)

	if reg != nil {
		e.GET("/metrics", reg.TextHandler)
	}
	return s
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("local API listening")
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.app.CancelVisual()
	s.app.CancelLogo()
	return s.echo.Shutdown(shutdownCtx)
}
