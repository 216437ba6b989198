package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wandertrails/wandertrails-api/internal/catalog"
	"github.com/wandertrails/wandertrails-api/internal/domain"
)

type memoryWishlistRepo struct {
	entries []domain.WishlistEntry
}

func (m *memoryWishlistRepo) Add(ctx context.Context, userID uuid.UUID, packageID string) (*domain.WishlistEntry, error) {
	for _, e := range m.entries {
		if e.UserID == userID && e.PackageID == packageID {
			return nil, &pgconn.PgError{Code: pgUniqueViolation}
		}
	}
	entry := domain.WishlistEntry{ID: uuid.New(), UserID: userID, PackageID: packageID}
	m.entries = append(m.entries, entry)
	return &entry, nil
}

func (m *memoryWishlistRepo) Remove(ctx context.Context, userID uuid.UUID, packageID string) error {
	for i, e := range m.entries {
		if e.UserID == userID && e.PackageID == packageID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memoryWishlistRepo) Contains(ctx context.Context, userID uuid.UUID, packageID string) (bool, error) {
	for _, e := range m.entries {
		if e.UserID == userID && e.PackageID == packageID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryWishlistRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WishlistEntry, error) {
	out := make([]domain.WishlistEntry, 0)
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func wishlistTestCatalog(t *testing.T) *catalog.Service {
	t.Helper()
	svc, err := catalog.New([]domain.Package{
		{Title: "Kyoto Traditions", Destination: "Kyoto", Country: "Japan", Price: 2899, Rating: 4.9, Image: "kyoto.jpg"},
		{Title: "Grand Safari", Destination: "Serengeti", Country: "Tanzania", Price: 4299, Rating: 4.9},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return svc
}

func TestWishlistServiceToggle(t *testing.T) {
	ctx := context.Background()
	repo := &memoryWishlistRepo{}
	svc := NewWishlistService(repo, wishlistTestCatalog(t))
	userID := uuid.New()

	added, err := svc.Toggle(ctx, userID, "kyoto-traditions")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !added {
		t.Fatal("first toggle should add")
	}

	present, err := svc.Contains(ctx, userID, "kyoto-traditions")
	if err != nil || !present {
		t.Fatalf("Contains after add: present=%v err=%v", present, err)
	}

	added, err = svc.Toggle(ctx, userID, "kyoto-traditions")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if added {
		t.Fatal("second toggle should remove")
	}

	present, err = svc.Contains(ctx, userID, "kyoto-traditions")
	if err != nil || present {
		t.Fatalf("Contains after remove: present=%v err=%v", present, err)
	}
}

func TestWishlistServiceToggleUnknownPackage(t *testing.T) {
	svc := NewWishlistService(&memoryWishlistRepo{}, wishlistTestCatalog(t))

	if _, err := svc.Toggle(context.Background(), uuid.New(), "no-such-trip"); !errors.Is(err, catalog.ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestWishlistServiceRemoveMissingEntry(t *testing.T) {
	svc := NewWishlistService(&memoryWishlistRepo{}, wishlistTestCatalog(t))

	err := svc.Remove(context.Background(), uuid.New(), "kyoto-traditions")
	if !errors.Is(err, ErrWishlistEntryNotFound) {
		t.Fatalf("expected ErrWishlistEntryNotFound, got %v", err)
	}
}

func TestWishlistServiceListJoinsCatalog(t *testing.T) {
	ctx := context.Background()
	repo := &memoryWishlistRepo{}
	svc := NewWishlistService(repo, wishlistTestCatalog(t))
	userID := uuid.New()

	if _, err := svc.Toggle(ctx, userID, "kyoto-traditions"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.Toggle(ctx, userID, "grand-safari"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	// An entry whose package has left the catalog is skipped on read.
	repo.entries = append(repo.entries, domain.WishlistEntry{
		ID: uuid.New(), UserID: userID, PackageID: "retired-trip",
	})

	items, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Title != "Kyoto Traditions" || items[0].Price != 2899 {
		t.Fatalf("joined card fields wrong: %+v", items[0])
	}
	if items[0].Image != "kyoto.jpg" {
		t.Fatalf("image = %q", items[0].Image)
	}
}
