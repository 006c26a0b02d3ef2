package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"fabhomes/internal/cache"
	"fabhomes/internal/config"
	"fabhomes/internal/identity"
	"fabhomes/internal/services"
	"fabhomes/utils"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: loading .env file: %v\n", err)
	}

	port := os.Getenv("PORT")
	if port != "" {
		port = ":" + port
	}

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "config/config.yaml"
	}

	configPath := flag.String("config", defaultConfig, "Path to the YAML config file")
	addr := flag.String("addr", port, "HTTP network address (overrides the config file)")
	devToken := flag.String("dev-token", "", "Print a development bearer token for this identity uid and exit")
	flag.Parse()

	log := utils.NewLogger("fabhomes")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}

	if *devToken != "" {
		if err := printDevToken(cfg, *devToken); err != nil {
			log.WithError(err).Fatal("failed to sign development token")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	log.Info("connected to database")

	deps := dependencies{
		bridge: identity.NewBridge(identity.Setup(ctx, cfg, log), log),
	}

	if cfg.Redis.Addr != "" {
		client, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, analytics will not be cached")
		} else {
			defer client.Close()
			deps.cache = cache.NewRedisCache(client, "fabhomes")
			log.WithField("addr", cfg.Redis.Addr).Info("analytics cache enabled")
		}
	}

	if cfg.StorageEnabled() {
		storage, err := utils.NewObjectStorage(utils.StorageConfig{
			Endpoint:      cfg.Storage.Endpoint,
			Region:        cfg.Storage.Region,
			Bucket:        cfg.Storage.Bucket,
			AccessKey:     cfg.Storage.AccessKey,
			SecretKey:     cfg.Storage.SecretKey,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			log.WithError(err).Fatal("failed to configure object storage")
		}
		deps.images = storage
		log.WithField("bucket", cfg.Storage.Bucket).Info("image uploads enabled")
	}

	app := initializeApp(db, log, cfg, deps)
	app.startAnalyticsRefresher(ctx, cfg.Redis.AnalyticsTTL)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		ErrorLog:     newServerErrorLog(log),
		Handler:      addSecurityHeaders(c.Handler(app.routes())),
		IdleTimeout:  cfg.Server.IdleTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	log.WithField("addr", cfg.Server.Address).Info("starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server stopped")
}

// openDB connects to MySQL. parseTime and clientFoundRows are forced on: the
// repositories scan DATETIME columns into time.Time and treat "0 rows
// affected" on an unchanged UPDATE as a match.
func openDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := mysql.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	dsn.ParseTime = true
	dsn.ClientFoundRows = true
	if dsn.Loc == nil {
		dsn.Loc = time.UTC
	}

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	return db, nil
}

func printDevToken(cfg config.Config, uid string) error {
	if cfg.Auth.DevSigningKey == "" {
		return fmt.Errorf("DEV_AUTH_SIGNING_KEY is not set")
	}
	m, err := utils.NewManager(cfg.Auth.DevSigningKey)
	if err != nil {
		return err
	}
	token, err := m.NewJWT(uid, os.Getenv("DEV_TOKEN_EMAIL"), os.Getenv("DEV_TOKEN_NAME"), cfg.Auth.DevTokenTTL)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

var _ services.ImageStore = (*utils.ObjectStorage)(nil)
var _ services.Cache = (*cache.RedisCache)(nil)

// newServerErrorLog routes net/http's internal errors through logrus.
func newServerErrorLog(log *logrus.Logger) *stdlog.Logger {
	return stdlog.New(log.WriterLevel(logrus.ErrorLevel), "", 0)
}
