package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wandertrails/wandertrails-api/internal/catalog"
	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/util"
)

type PackageHandler struct {
	catalog *catalog.Service
	search  *catalog.SearchCache
}

func RegisterPackages(e *echo.Echo, catalogSvc *catalog.Service, search *catalog.SearchCache) {
	handler := &PackageHandler{catalog: catalogSvc, search: search}

	group := e.Group("/api/v1")
	group.GET("/packages", handler.listPackages)
	group.GET("/packages/search", handler.searchPackages)
	group.GET("/packages/:slug", handler.getPackage)
	group.GET("/continents", handler.listContinents)
	group.GET("/countries/:country/packages", handler.listByCountry)
}

func (h *PackageHandler) listPackages(c echo.Context) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	packages := h.search.Filter(criteria)
	return c.JSON(http.StatusOK, util.Envelope{
		"packages": buildPackageCards(packages),
		"meta": util.Envelope{
			"count": len(packages),
			"total": h.catalog.Len(),
		},
	})
}

func (h *PackageHandler) searchPackages(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return c.JSON(http.StatusOK, util.Envelope{"packages": []util.Envelope{}})
	}

	packages := h.search.Search(query)
	return c.JSON(http.StatusOK, util.Envelope{
		"packages": buildPackageCards(packages),
	})
}

func (h *PackageHandler) getPackage(c echo.Context) error {
	pkg, err := h.catalog.Get(c.Param("slug"))
	if err != nil {
		if errors.Is(err, catalog.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load package"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"package": pkg})
}

func (h *PackageHandler) listContinents(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Envelope{
		"continents": h.catalog.Continents(),
	})
}

func (h *PackageHandler) listByCountry(c echo.Context) error {
	country := strings.TrimSpace(c.Param("country"))
	packages := h.catalog.ByCountry(country)
	if len(packages) == 0 {
		return c.JSON(http.StatusNotFound, util.Error("no packages for this country"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"country":  country,
		"packages": buildPackageCards(packages),
	})
}

// parseCriteria maps listing query params onto filter criteria. Unknown
// duration, difficulty, and sort values are passed through and degrade to
// no-constraint in the filter itself; only malformed numbers error.
func parseCriteria(c echo.Context) (catalog.Criteria, error) {
	criteria := catalog.Criteria{
		Query:      strings.TrimSpace(c.QueryParam("q")),
		Duration:   c.QueryParam("duration"),
		Difficulty: c.QueryParam("difficulty"),
		Theme:      strings.TrimSpace(c.QueryParam("theme")),
		Sort:       strings.TrimSpace(c.QueryParam("sort")),
	}

	if v := strings.TrimSpace(c.QueryParam("price_min")); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			return catalog.Criteria{}, errors.New("price_min must be a non-negative number")
		}
		criteria.PriceMin = parsed
	}
	if v := strings.TrimSpace(c.QueryParam("price_max")); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			return catalog.Criteria{}, errors.New("price_max must be a non-negative number")
		}
		criteria.PriceMax = parsed
	}
	if criteria.PriceMin > 0 && criteria.PriceMax > 0 && criteria.PriceMin > criteria.PriceMax {
		return catalog.Criteria{}, errors.New("price_min cannot be greater than price_max")
	}
	if v := strings.TrimSpace(c.QueryParam("limit")); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return catalog.Criteria{}, errors.New("limit must be a non-negative integer")
		}
		criteria.Limit = parsed
	}
	return criteria, nil
}

// buildPackageCards renders the listing card projection: enough for a grid
// tile without the full itinerary payload.
func buildPackageCards(packages []domain.Package) []util.Envelope {
	cards := make([]util.Envelope, 0, len(packages))
	for i := range packages {
		pkg := &packages[i]
		cards = append(cards, util.Envelope{
			"id":           pkg.ID,
			"title":        pkg.Title,
			"destination":  pkg.Destination,
			"country":      pkg.Country,
			"continent":    pkg.Continent,
			"duration":     pkg.Duration,
			"price":        pkg.Price,
			"image":        pkg.Image,
			"rating":       pkg.Rating,
			"review_count": pkg.ReviewCount,
			"themes":       pkg.Themes,
			"difficulty":   pkg.Difficulty,
		})
	}
	return cards
}
