package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/media"
	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
	"github.com/wandertrails/wandertrails-api/internal/util"
)

var (
	ErrEmailAlreadyUsed   = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidGoogleToken = errors.New("invalid google token")
	ErrUserNotFound       = errors.New("user not found")
	ErrAvatarValidation   = errors.New("avatar validation failed")
)

type AuthServiceConfig struct {
	AvatarBucket    string
	AvatarMaxBytes  int64
	AvatarMaxPixels int
	GoogleAudience  string
}

type AuthService struct {
	users   ports.UserRepository
	storage ports.ObjectStorage
	jwt     *util.JWTManager

	avatarBucket    string
	avatarMaxBytes  int64
	avatarMaxPixels int
	googleAudience  string
	imageProcessor  media.Processor
	validateGoogle  func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
	now             func() time.Time
}

const defaultAvatarMaxBytes = int64(5 * 1024 * 1024)

var allowedAvatarMIMEs = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

func NewAuthService(
	users ports.UserRepository,
	storage ports.ObjectStorage,
	jwtManager *util.JWTManager,
	processor media.Processor,
	cfg AuthServiceConfig,
) *AuthService {
	maxBytes := cfg.AvatarMaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultAvatarMaxBytes
	}
	maxPixels := cfg.AvatarMaxPixels
	if maxPixels <= 0 {
		maxPixels = media.DefaultMaxDimension
	}
	return &AuthService{
		users:           users,
		storage:         storage,
		jwt:             jwtManager,
		avatarBucket:    strings.TrimSpace(cfg.AvatarBucket),
		avatarMaxBytes:  maxBytes,
		avatarMaxPixels: maxPixels,
		googleAudience:  cfg.GoogleAudience,
		imageProcessor:  processor,
		validateGoogle:  idtoken.Validate,
		now:             time.Now,
	}
}

type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) RegisterWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email is required")
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateEmailUser(ctx, email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return s.issueToken(user)
}

func (s *AuthService) LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(user)
}

// LoginWithGoogle validates a Google ID token and upserts the user row.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idTok string) (*AuthResult, error) {
	payload, err := s.validateGoogle(ctx, idTok, s.googleAudience)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	email, _ := payload.Claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return nil, ErrInvalidGoogleToken
	}
	var fullName *string
	if name, ok := payload.Claims["name"].(string); ok && strings.TrimSpace(name) != "" {
		trimmed := strings.TrimSpace(name)
		fullName = &trimmed
	}

	user, err := s.users.UpsertGoogleUser(ctx, strings.ToLower(email), fullName)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName *string) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, normalizeComment(fullName), nil)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UploadAvatar validates, downscales, and stores a profile image, then
// persists the public URL on the user row.
func (s *AuthService) UploadAvatar(ctx context.Context, userID uuid.UUID, upload media.Upload) (*domain.User, error) {
	if s.storage == nil {
		return nil, errors.New("avatar storage is not configured")
	}
	if upload.Size <= 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrAvatarValidation)
	}
	if s.avatarMaxBytes > 0 && upload.Size > s.avatarMaxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrAvatarValidation, s.avatarMaxBytes)
	}
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if _, ok := allowedAvatarMIMEs[contentType]; !ok {
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrAvatarValidation, upload.ContentType)
	}

	reader := upload.Reader
	size := upload.Size
	if s.imageProcessor != nil {
		processed, err := s.imageProcessor.Process(ctx, upload, s.avatarMaxPixels)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAvatarValidation, err)
		}
		reader = bytes.NewReader(processed.Bytes)
		size = int64(len(processed.Bytes))
		contentType = processed.ContentType
	}

	objectKey := fmt.Sprintf("avatars/%s/%s%s",
		userID.String(), s.now().UTC().Format("20060102T150405Z"), extensionFor(contentType))
	url, err := s.storage.Upload(ctx, s.avatarBucket, objectKey, contentType, reader, size)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, userID, nil, &url)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email, user.FullName)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
