package main

import (
	"io"
	"log"
	"os"

	"github.com/wandertrails/wandertrails-api/internal/booking"
	"github.com/wandertrails/wandertrails-api/internal/catalog"
	"github.com/wandertrails/wandertrails-api/internal/config"
	"github.com/wandertrails/wandertrails-api/internal/logging"
	"github.com/wandertrails/wandertrails-api/internal/media"
	"github.com/wandertrails/wandertrails-api/internal/payment"
	miniorepo "github.com/wandertrails/wandertrails-api/internal/repository/minio"
	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
	"github.com/wandertrails/wandertrails-api/internal/repository/postgres"
	"github.com/wandertrails/wandertrails-api/internal/service"
	transport "github.com/wandertrails/wandertrails-api/internal/transport/http"
	"github.com/wandertrails/wandertrails-api/internal/transport/mail"
	"github.com/wandertrails/wandertrails-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewTCPWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("log collector disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	catalogSvc, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	searchCache, err := catalog.NewSearchCache(catalogSvc, cfg.SearchCacheSize)
	if err != nil {
		log.Fatalf("build search cache: %v", err)
	}

	var storage ports.ObjectStorage
	if cfg.MinIOEndpoint != "" {
		minioClient, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("connect object storage: %v", err)
		}
		storage = miniorepo.NewStorage(minioClient, cfg.MinIOPublicURL, cfg.MinIOUseSSL)
	}

	var provider payment.Provider
	if cfg.StripeSecretKey != "" {
		provider = payment.NewStripeProvider(cfg.StripeSecretKey)
	} else {
		log.Println("STRIPE_SECRET_KEY not set, using the in-process fake payment provider")
		provider = payment.NewFakeProvider()
	}

	var mailer service.BookingMailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewBookingMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	bookingRepo := postgres.NewBookingRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	wishlistRepo := postgres.NewWishlistRepo(db)
	settingsRepo := postgres.NewNotificationSettingsRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)
	userRepo := postgres.NewUserRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	processor := media.NewImageProcessor(media.DefaultMaxDimension)

	authSvc := service.NewAuthService(userRepo, storage, jwtManager, processor, service.AuthServiceConfig{
		AvatarBucket:   cfg.AvatarBucket,
		AvatarMaxBytes: cfg.AvatarMaxBytes,
		GoogleAudience: cfg.GoogleAudience,
	})
	notificationSvc := service.NewNotificationService(settingsRepo, notificationRepo, mailer)
	bookingSvc := service.NewBookingService(bookingRepo, provider, notificationSvc)
	reviewSvc := service.NewReviewService(reviewRepo, bookingRepo, catalogSvc)
	wishlistSvc := service.NewWishlistService(wishlistRepo, catalogSvc)
	sessions := booking.NewSessionStore(cfg.WizardTTL)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterPages(e)
	transport.RegisterSwagger(e)
	transport.RegisterPackages(e, catalogSvc, searchCache)
	transport.RegisterWizard(e, authSvc, catalogSvc, sessions, bookingSvc)
	transport.RegisterAuth(e, authSvc)
	transport.RegisterBookings(e, authSvc, bookingSvc)
	transport.RegisterReviews(e, authSvc, reviewSvc)
	transport.RegisterWishlist(e, authSvc, wishlistSvc)
	transport.RegisterNotifications(e, authSvc, notificationSvc)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
