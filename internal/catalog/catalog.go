package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/util"
)

var ErrPackageNotFound = errors.New("package not found")

// Service holds the in-memory package catalog. It is constructed once at
// startup and injected into everything that reads packages; the backing
// slice is never mutated after Load.
type Service struct {
	packages []domain.Package
	bySlug   map[string]int
}

// Load reads the catalog seed file and builds the service. Package IDs are
// always re-derived from titles so the slug stays deterministic regardless
// of what the seed file carries.
func Load(path string) (*Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read seed file: %w", err)
	}
	var seed struct {
		Packages []domain.Package `json:"packages"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("catalog: parse seed file: %w", err)
	}
	return New(seed.Packages)
}

// New builds a catalog from raw package records, normalizing each one.
func New(packages []domain.Package) (*Service, error) {
	s := &Service{
		packages: make([]domain.Package, 0, len(packages)),
		bySlug:   make(map[string]int, len(packages)),
	}
	for i, pkg := range packages {
		if strings.TrimSpace(pkg.Title) == "" {
			return nil, fmt.Errorf("catalog: package %d has no title", i)
		}
		pkg.ID = util.Slugify(pkg.Title)
		if pkg.ID == "" {
			return nil, fmt.Errorf("catalog: package %q produces an empty slug", pkg.Title)
		}
		if _, exists := s.bySlug[pkg.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate slug %q", pkg.ID)
		}
		if len(pkg.Gallery) == 0 && pkg.Image != "" {
			pkg.Gallery = []string{pkg.Image}
		}
		s.bySlug[pkg.ID] = len(s.packages)
		s.packages = append(s.packages, pkg)
	}
	return s, nil
}

// All returns the catalog in source order. The result is a copy.
func (s *Service) All() []domain.Package {
	out := make([]domain.Package, len(s.packages))
	copy(out, s.packages)
	return out
}

func (s *Service) Len() int {
	return len(s.packages)
}

// Get looks a package up by slug.
func (s *Service) Get(slug string) (*domain.Package, error) {
	idx, ok := s.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, ErrPackageNotFound
	}
	pkg := s.packages[idx]
	return &pkg, nil
}

// ByCountry returns packages whose country matches case-insensitively, in
// catalog order.
func (s *Service) ByCountry(country string) []domain.Package {
	want := strings.ToLower(strings.TrimSpace(country))
	var out []domain.Package
	for _, pkg := range s.packages {
		if strings.ToLower(pkg.Country) == want {
			out = append(out, pkg)
		}
	}
	return out
}

// Continents returns the distinct continents present in the catalog, sorted
// alphabetically.
func (s *Service) Continents() []string {
	seen := make(map[string]struct{})
	for _, pkg := range s.packages {
		if pkg.Continent != "" {
			seen[pkg.Continent] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
