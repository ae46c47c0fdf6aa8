// Package api exposes the analytics core over HTTP.
package api

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/camilh/snep-tools/internal/chart"
	"github.com/camilh/snep-tools/internal/store"
)

// EntryReader is the slice of the store the handlers need.
type EntryReader interface {
	EntriesBetween(startYear, endYear int) ([]chart.Entry, error)
	AllEntries() ([]chart.Entry, error)
}

type Server struct {
	entries EntryReader
	echo    *echo.Echo
}

func New(entries EntryReader) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())

	s := &Server{entries: entries, echo: e}
	e.GET("/api/stats", s.getStats)
	e.GET("/api/entity/:name", s.getEntityDetails)
	e.GET("/api/breakdown/:dimension", s.getBreakdown)
	e.GET("/api/privacy", s.getPrivacy)
	e.GET("/api/export/:name", s.getEntityDetails)
	return s
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// ServeHTTP makes the server usable with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func storeError(c echo.Context, err error) error {
	if errors.Is(err, store.ErrUnavailable) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "store unavailable"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// queryWindow builds the filter window from query parameters. Defaults
// cover 2020-W01 through the current ISO week at rank ceiling 200.
func queryWindow(c echo.Context) (chart.Window, error) {
	nowYear, nowWeek := time.Now().ISOWeek()
	w := chart.Window{
		StartYear: 2020,
		StartWeek: 1,
		EndYear:   nowYear,
		EndWeek:   nowWeek,
		RankLimit: 200,
	}

	var err error
	if v := c.QueryParam("start"); v != "" {
		if w.StartYear, w.StartWeek, err = chart.ParseWeek(v); err != nil {
			return w, err
		}
	}
	if v := c.QueryParam("end"); v != "" {
		if w.EndYear, w.EndWeek, err = chart.ParseWeek(v); err != nil {
			return w, err
		}
	}
	if v := c.QueryParam("rank"); v != "" {
		if w.RankLimit, err = strconv.Atoi(v); err != nil {
			return w, errors.New("invalid rank parameter")
		}
	}
	return w, nil
}

func queryRole(c echo.Context) (chart.Role, error) {
	t := c.QueryParam("type")
	if t == "" {
		t = "artist"
	}
	return chart.ParseRole(t)
}

func (s *Server) getStats(c echo.Context) error {
	role, err := queryRole(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	w, err := queryWindow(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	entries, err := s.entries.EntriesBetween(w.StartYear, w.EndYear)
	if err != nil {
		return storeError(c, err)
	}

	stats := chart.TopEntities(entries, role, w)
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit parameter"})
		}
		if limit < len(stats) {
			stats = stats[:limit]
		}
	}
	if stats == nil {
		stats = []chart.EntityStat{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":  role.String(),
		"stats": stats,
	})
}

func (s *Server) getEntityDetails(c echo.Context) error {
	name := c.Param("name")
	role, err := queryRole(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	w, err := queryWindow(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	entries, err := s.entries.EntriesBetween(w.StartYear, w.EndYear)
	if err != nil {
		return storeError(c, err)
	}

	// Zero matches is an empty list, never an error.
	details := chart.EntityDetails(entries, name, role, w)
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].BestRank < details[j].BestRank
	})
	if details == nil {
		details = []chart.SongDetail{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"entity":      name,
		"songs":       details,
		"total_songs": len(details),
	})
}

func (s *Server) getBreakdown(c echo.Context) error {
	entries, err := s.entries.AllEntries()
	if err != nil {
		return storeError(c, err)
	}

	counts, err := chart.Breakdown(entries, c.Param("dimension"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, counts)
}

// getPrivacy serves the GDPR "right to be informed" document.
func (s *Server) getPrivacy(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"policy":     "GDPR Compliance Statement",
		"controller": "SNEP Analytics Project",
		"data_processed": []string{
			"Artist Names (Public Data)",
			"Producer Names (Public Data)",
			"Song Titles",
			"Rankings",
		},
		"legal_basis":    "Legitimate Interest (Public availability of music charts)",
		"purpose":        "Statistical analysis and historical archiving of music charts.",
		"data_retention": "Data is retained for the duration of the project lifecycle.",
		"user_rights": map[string]string{
			"access":      "GET /api/entity/:name provides full access to stored data for an entity.",
			"portability": "GET /api/export/:name returns the same data in standard JSON format.",
		},
	})
}
