package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/wandertrails/wandertrails-api/internal/catalog"
	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
)

var ErrWishlistEntryNotFound = errors.New("package is not on the wishlist")

type WishlistService struct {
	wishlist ports.WishlistRepository
	catalog  *catalog.Service
}

func NewWishlistService(wishlistRepo ports.WishlistRepository, catalogSvc *catalog.Service) *WishlistService {
	return &WishlistService{
		wishlist: wishlistRepo,
		catalog:  catalogSvc,
	}
}

// Toggle adds the package when absent and removes it when present. There
// are no intermediate states; the return value reports which side ran.
func (s *WishlistService) Toggle(ctx context.Context, userID uuid.UUID, packageSlug string) (added bool, err error) {
	pkg, err := s.catalog.Get(packageSlug)
	if err != nil {
		return false, err
	}

	present, err := s.wishlist.Contains(ctx, userID, pkg.ID)
	if err != nil {
		return false, err
	}
	if present {
		if err := s.wishlist.Remove(ctx, userID, pkg.ID); err != nil && !isNotFound(err) {
			return false, err
		}
		return false, nil
	}

	if _, err := s.wishlist.Add(ctx, userID, pkg.ID); err != nil {
		// A concurrent toggle may have inserted the pair already; the
		// database's uniqueness makes that a no-op for us.
		if !isUniqueViolation(err) && !isNotFound(err) {
			return false, err
		}
	}
	return true, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID uuid.UUID, packageSlug string) error {
	pkg, err := s.catalog.Get(packageSlug)
	if err != nil {
		return err
	}
	if err := s.wishlist.Remove(ctx, userID, pkg.ID); err != nil {
		if isNotFound(err) {
			return ErrWishlistEntryNotFound
		}
		return err
	}
	return nil
}

func (s *WishlistService) Contains(ctx context.Context, userID uuid.UUID, packageSlug string) (bool, error) {
	pkg, err := s.catalog.Get(packageSlug)
	if err != nil {
		return false, err
	}
	return s.wishlist.Contains(ctx, userID, pkg.ID)
}

// List joins wishlist entries with catalog card data. Entries whose
// package has left the catalog are skipped rather than erroring.
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]domain.WishlistItem, error) {
	entries, err := s.wishlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.WishlistItem, 0, len(entries))
	for _, entry := range entries {
		pkg, err := s.catalog.Get(entry.PackageID)
		if err != nil {
			continue
		}
		items = append(items, domain.WishlistItem{
			WishlistEntry: entry,
			Title:         pkg.Title,
			Destination:   pkg.Destination,
			Country:       pkg.Country,
			Price:         pkg.Price,
			Image:         pkg.Image,
			Rating:        pkg.Rating,
		})
	}
	return items, nil
}
