package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wandertrails/wandertrails-api/internal/catalog"
	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
)

var (
	ErrReviewValidation    = errors.New("review validation failed")
	ErrReviewAlreadyExists = errors.New("review already exists for this package")
)

type ReviewService struct {
	reviews  ports.ReviewRepository
	bookings ports.BookingRepository
	catalog  *catalog.Service
}

func NewReviewService(reviews ports.ReviewRepository, bookings ports.BookingRepository, catalogSvc *catalog.Service) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		bookings: bookings,
		catalog:  catalogSvc,
	}
}

type ReviewCreateInput struct {
	Rating  int
	Comment *string
}

// Create stores a review for a catalog package. The verified flag is set
// when the reviewer holds a confirmed booking for the package.
func (s *ReviewService) Create(ctx context.Context, user *domain.User, packageSlug string, input ReviewCreateInput) (*domain.Review, *domain.ReviewAggregate, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrReviewValidation)
	}
	pkg, err := s.catalog.Get(packageSlug)
	if err != nil {
		return nil, nil, err
	}

	verified := false
	if s.bookings != nil {
		hasBooking, err := s.bookings.HasConfirmed(ctx, user.ID, pkg.ID)
		if err != nil {
			return nil, nil, err
		}
		verified = hasBooking
	}

	userName := user.Email
	if user.FullName != nil && strings.TrimSpace(*user.FullName) != "" {
		userName = strings.TrimSpace(*user.FullName)
	}

	stored, err := s.reviews.Create(ctx, &domain.Review{
		PackageID: pkg.ID,
		UserID:    user.ID,
		UserName:  userName,
		Rating:    input.Rating,
		Comment:   normalizeComment(input.Comment),
		Verified:  verified,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, ErrReviewAlreadyExists
		}
		return nil, nil, err
	}

	aggregate, err := s.reviews.AggregateByPackage(ctx, pkg.ID)
	if err != nil {
		return nil, nil, err
	}
	return stored, aggregate, nil
}

func (s *ReviewService) ListByPackage(ctx context.Context, packageSlug string, limit, offset int) (*domain.ReviewListResult, error) {
	pkg, err := s.catalog.Get(packageSlug)
	if err != nil {
		return nil, err
	}

	nLimit, nOffset := normalizePagination(limit, offset)

	reviews, err := s.reviews.ListByPackage(ctx, pkg.ID, nLimit, nOffset)
	if err != nil {
		return nil, err
	}
	aggregate, err := s.reviews.AggregateByPackage(ctx, pkg.ID)
	if err != nil {
		return nil, err
	}

	return &domain.ReviewListResult{
		PackageID: pkg.ID,
		Reviews:   reviews,
		Aggregate: *aggregate,
		Limit:     nLimit,
		Offset:    nOffset,
	}, nil
}

func normalizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
