package catalog

import (
	"reflect"
	"testing"
)

func TestCacheKeyFoldsAllFields(t *testing.T) {
	a := Criteria{Query: " Rome ", Duration: "Short", Difficulty: "EASY", Theme: "Culture", Sort: "PRICE-ASC", Limit: 4}
	b := Criteria{Query: "rome", Duration: "short", Difficulty: "easy", Theme: "culture", Sort: "price-asc", Limit: 4}
	if cacheKey(a) != cacheKey(b) {
		t.Fatalf("equivalent criteria produced distinct keys:\n%s\n%s", cacheKey(a), cacheKey(b))
	}

	c := b
	c.Theme = "wildlife"
	if cacheKey(b) == cacheKey(c) {
		t.Fatal("different themes share a cache key")
	}
}

func TestSearchCacheHitMatchesMiss(t *testing.T) {
	svc, err := New(testPackages())
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	cache, err := NewSearchCache(svc, 8)
	if err != nil {
		t.Fatalf("build cache: %v", err)
	}

	miss := cache.Filter(Criteria{Theme: "adventure", Sort: SortPriceAsc})
	hit := cache.Filter(Criteria{Theme: "Adventure", Sort: "PRICE-ASC"})
	if !reflect.DeepEqual(ids(miss), ids(hit)) {
		t.Fatalf("hit diverged from miss: %v vs %v", ids(hit), ids(miss))
	}
}

func TestSearchCacheReturnsDefensiveCopies(t *testing.T) {
	svc, err := New(testPackages())
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	cache, err := NewSearchCache(svc, 8)
	if err != nil {
		t.Fatalf("build cache: %v", err)
	}

	first := cache.Filter(Criteria{Theme: "adventure"})
	if len(first) == 0 {
		t.Fatal("expected matches")
	}
	first[0].Title = "clobbered"

	second := cache.Filter(Criteria{Theme: "adventure"})
	if second[0].Title == "clobbered" {
		t.Fatal("cached entry leaked through to a later caller")
	}
}
