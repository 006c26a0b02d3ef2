package main

import (
	"database/sql"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/config"
	"fabhomes/internal/handlers"
	"fabhomes/internal/identity"
	"fabhomes/internal/repositories"
	"fabhomes/internal/services"
)

type application struct {
	log       *logrus.Logger
	db        *sql.DB
	handlers  handlers.Handlers
	auth      *handlers.Authenticator
	analytics *services.AnalyticsService
}

// dependencies are the optional collaborators main wires up before the
// application. Nil cache and images disable caching and uploads.
type dependencies struct {
	bridge *identity.Bridge
	cache  services.Cache
	images services.ImageStore
}

func initializeApp(db *sql.DB, log *logrus.Logger, cfg config.Config, deps dependencies) *application {
	// Repositories
	propertyRepo := &repositories.PropertyRepository{DB: db}
	userRepo := &repositories.UserRepository{DB: db}
	agencyRepo := &repositories.AgencyRepository{DB: db}
	inquiryRepo := &repositories.InquiryRepository{DB: db}
	favoriteRepo := &repositories.FavoriteRepository{DB: db}
	reviewRepo := &repositories.ReviewRepository{DB: db}
	transactionRepo := &repositories.TransactionRepository{DB: db}
	analyticsRepo := &repositories.AnalyticsRepository{DB: db}

	// Services
	propertyService := &services.PropertyService{
		Properties: propertyRepo,
		Users:      userRepo,
		Agencies:   agencyRepo,
		Reviews:    reviewRepo,
		Images:     deps.images,
	}
	inquiryService := &services.InquiryService{Inquiries: inquiryRepo, Properties: propertyRepo, Users: userRepo}
	favoriteService := &services.FavoriteService{Favorites: favoriteRepo, Properties: propertyRepo}
	agencyService := &services.AgencyService{Agencies: agencyRepo, Listings: propertyRepo, Users: userRepo}
	reviewService := &services.ReviewService{Reviews: reviewRepo, Users: userRepo, Agencies: agencyRepo, Properties: propertyRepo}
	transactionService := &services.TransactionService{Transactions: transactionRepo, Properties: propertyRepo}
	analyticsService := &services.AnalyticsService{
		Store: analyticsRepo,
		Cache: deps.cache,
		TTL:   cfg.Redis.AnalyticsTTL,
		Log:   log,
	}
	userService := &services.UserService{Users: userRepo}

	bridge := deps.bridge
	if bridge == nil {
		bridge = identity.NewBridge(nil, log)
	}

	return &application{
		log: log,
		db:  db,
		handlers: handlers.Handlers{
			Properties:   &handlers.PropertyHandler{Service: propertyService, Log: log},
			Inquiries:    &handlers.InquiryHandler{Service: inquiryService, Log: log},
			Favorites:    &handlers.FavoriteHandler{Service: favoriteService, Log: log},
			Agencies:     &handlers.AgencyHandler{Service: agencyService, Log: log},
			Analytics:    &handlers.AnalyticsHandler{Service: analyticsService, Log: log},
			Reviews:      &handlers.ReviewHandler{Service: reviewService, Log: log},
			Transactions: &handlers.TransactionHandler{Service: transactionService, Log: log},
			Users:        &handlers.UserHandler{Service: userService, Log: log},
		},
		auth:      &handlers.Authenticator{Bridge: bridge, Users: userService, Log: log},
		analytics: analyticsService,
	}
}
