package web

import (
	"bytes"
	"net/http"

	"github.com/khanglvm/marketing-support/internal/gateway"
	"github.com/khanglvm/marketing-support/internal/history"
	"github.com/labstack/echo/v4"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// planRequest is the body of POST /api/plan. Image data is base64 in JSON.
type planRequest struct {
	Link  string               `json:"link"`
	Image *gateway.InlineImage `json:"image"`
	Price string               `json:"price"`
	Phone string               `json:"phone"`
}

type logoRequest struct {
	Brand string `json:"brand"`
	Style string `json:"style"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type imageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type cancelResponse struct {
	Canceled bool `json:"canceled"`
}

func (s *Server) state(c echo.Context) error {
	return c.JSON(http.StatusOK, s.app.Snapshot())
}

func (s *Server) submit(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be JSON")
	}
	if req.Image != nil && len(req.Image.Data) == 0 {
		req.Image = nil
	}

	plan, err := s.app.Submit(c.Request().Context(), gateway.ContentInput{
		Link:  req.Link,
		Image: req.Image,
		Price: req.Price,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

func (s *Server) generateVisual(c echo.Context) error {
	uri, err := s.app.GenerateVisual(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, imageResponse{ImageURL: uri})
}

func (s *Server) cancelVisual(c echo.Context) error {
	return c.JSON(http.StatusOK, cancelResponse{Canceled: s.app.CancelVisual()})
}

func (s *Server) generateLogo(c echo.Context) error {
	var req logoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be JSON")
	}
	if req.Style == "" {
		req.Style = string(gateway.StyleModern)
	}

	uri, err := s.app.GenerateLogo(c.Request().Context(), req.Brand, gateway.LogoStyle(req.Style))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, imageResponse{ImageURL: uri})
}

func (s *Server) cancelLogo(c echo.Context) error {
	return c.JSON(http.StatusOK, cancelResponse{Canceled: s.app.CancelLogo()})
}

func (s *Server) listHistory(c echo.Context) error {
	return c.JSON(http.StatusOK, s.app.History())
}

func (s *Server) clearHistory(c echo.Context) error {
	if err := s.app.ClearHistory(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) exportHistory(c echo.Context) error {
	var buf bytes.Buffer
	if err := history.ExportXLSX(&buf, s.app.History()); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="history.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func (s *Server) searchHistory(c echo.Context) error {
	limit := 10
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
	}
	results, err := s.app.SearchHistory(c.QueryParam("q"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

func (s *Server) selectHistory(c echo.Context) error {
	if err := s.app.SelectHistory(c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.app.Snapshot())
}

func (s *Server) getEmail(c echo.Context) error {
	return c.JSON(http.StatusOK, emailRequest{Email: s.app.Email()})
}

func (s *Server) putEmail(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be JSON")
	}
	if err := s.app.SaveEmail(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emailRequest{Email: s.app.Email()})
}

func (s *Server) activity(c echo.Context) error {
	return c.JSON(http.StatusOK, s.app.Snapshot().Activity)
}
