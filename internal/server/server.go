// Package server exposes the journal's diagnostics over HTTP: health,
// the icon table, and the active listener registrations.
package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/wardenbot/warden/internal/icons"
	"github.com/wardenbot/warden/internal/journal"
)

// Server holds the dependencies for the admin HTTP surface.
type Server struct {
	E      *echo.Echo
	router *journal.Router
}

// New creates the admin server over the given journal router.
func New(router *journal.Router) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{E: e, router: router}

	e.GET("/healthz", s.health)
	e.GET("/api/icons", s.icons)
	e.GET("/api/listeners", s.listeners)

	return s
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) icons(c echo.Context) error {
	return c.JSON(http.StatusOK, icons.All())
}

func (s *Server) listeners(c echo.Context) error {
	return c.JSON(http.StatusOK, s.router.Listeners())
}
