package catalog

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wandertrails/wandertrails-api/internal/domain"
)

const defaultSearchCacheSize = 512

// SearchCache memoizes filter results over the immutable catalog. Safe for
// concurrent use; lru.Cache carries its own lock.
type SearchCache struct {
	catalog *Service
	cache   *lru.Cache[string, []domain.Package]
}

func NewSearchCache(catalog *Service, size int) (*SearchCache, error) {
	if size <= 0 {
		size = defaultSearchCacheSize
	}
	cache, err := lru.New[string, []domain.Package](size)
	if err != nil {
		return nil, err
	}
	return &SearchCache{catalog: catalog, cache: cache}, nil
}

// Filter returns the cached result for the criteria, computing and storing
// it on a miss. Callers must not mutate the returned slice elements.
func (c *SearchCache) Filter(criteria Criteria) []domain.Package {
	key := cacheKey(criteria)
	if cached, ok := c.cache.Get(key); ok {
		out := make([]domain.Package, len(cached))
		copy(out, cached)
		return out
	}
	result := Filter(c.catalog.All(), criteria)
	c.cache.Add(key, result)
	out := make([]domain.Package, len(result))
	copy(out, result)
	return out
}

// Search memoizes autocomplete lookups.
func (c *SearchCache) Search(query string) []domain.Package {
	return c.Filter(Criteria{Query: query, Limit: AutocompleteLimit})
}

// cacheKey folds every field the same way the filter engine does, so
// criteria that produce the same result share one entry.
func cacheKey(criteria Criteria) string {
	return fmt.Sprintf("q=%s|min=%g|max=%g|dur=%s|dif=%s|th=%s|sort=%s|lim=%d",
		foldKeyField(criteria.Query),
		criteria.PriceMin,
		criteria.PriceMax,
		foldKeyField(criteria.Duration),
		foldKeyField(criteria.Difficulty),
		foldKeyField(criteria.Theme),
		foldKeyField(criteria.Sort),
		criteria.Limit,
	)
}

func foldKeyField(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
