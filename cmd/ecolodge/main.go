package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	authsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/auth"
	availsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/availability"
	blogsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/blog"
	blogagentsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/blogagent"
	bookingsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/booking"
	contentsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/content"
	gallerysvc "github.com/thienvyma/tagiangecolodge/internal/app/services/gallery"
	roomssvc "github.com/thienvyma/tagiangecolodge/internal/app/services/rooms"
	domainauth "github.com/thienvyma/tagiangecolodge/internal/domain/auth"
	domainblog "github.com/thienvyma/tagiangecolodge/internal/domain/blog"
	domainbooking "github.com/thienvyma/tagiangecolodge/internal/domain/booking"
	domaincontent "github.com/thienvyma/tagiangecolodge/internal/domain/content"
	domaingallery "github.com/thienvyma/tagiangecolodge/internal/domain/gallery"
	domainrooms "github.com/thienvyma/tagiangecolodge/internal/domain/rooms"
	"github.com/thienvyma/tagiangecolodge/internal/infra/ai"
	"github.com/thienvyma/tagiangecolodge/internal/infra/broker/kafka"
	"github.com/thienvyma/tagiangecolodge/internal/infra/cache"
	"github.com/thienvyma/tagiangecolodge/internal/infra/config"
	mongodb "github.com/thienvyma/tagiangecolodge/internal/infra/db/mongo"
	ginserver "github.com/thienvyma/tagiangecolodge/internal/infra/http/gin"
	"github.com/thienvyma/tagiangecolodge/internal/infra/notify"
	"github.com/thienvyma/tagiangecolodge/internal/infra/obs"
	"github.com/thienvyma/tagiangecolodge/internal/infra/security"
	"github.com/thienvyma/tagiangecolodge/internal/infra/storage/memory"
	"github.com/thienvyma/tagiangecolodge/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	logger := obs.NewLogger(cfg.Env)
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	fixturesPath := getenv("ROOM_FIXTURES", filepath.Join("data", "rooms.json"))
	if err := app.loadRoomFixtures(ctx, fixturesPath, logger); err != nil {
		logger.Warn("room fixtures load failed", "error", err, "path", fixturesPath)
	}

	if app.consumer != nil {
		go func() {
			if err := app.consumer.Run(ctx, []string{cfg.BookingTopic}); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("booking event consumer stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	consumer *kafka.Consumer
	ready    func() error
	rooms    domainrooms.Repository
}

type repositories struct {
	bookings domainbooking.Repository
	rooms    domainrooms.Repository
	gallery  domaingallery.Repository
	blog     domainblog.Repository
	content  domaincontent.Repository
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	repos, ready, err := buildRepositories(cfg, logger, &cleanups)
	if err != nil {
		cleanup()
		return application{}, nil, err
	}

	sessions, err := buildSessionStore(ctx, cfg, logger, &cleanups)
	if err != nil {
		cleanup()
		return application{}, nil, err
	}

	var uploader gallerysvc.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		client, err := s3.NewClient(s3.Config{
			Endpoint:       cfg.S3Endpoint,
			PublicEndpoint: cfg.S3PublicEndpoint,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			Bucket:         cfg.S3Bucket,
			UseSSL:         cfg.S3UseSSL,
		}, logger)
		if err != nil {
			cleanup()
			return application{}, nil, fmt.Errorf("s3 uploader: %w", err)
		}
		uploader = client
	}

	emailNotifier := &notify.EmailNotifier{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		User:   cfg.SMTPUser,
		Pass:   cfg.SMTPPass,
		To:     cfg.NotifyEmail,
		Logger: logger,
	}

	var publisher bookingsvc.EventPublisher
	var notifier bookingsvc.Notifier
	var consumer *kafka.Consumer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			cleanup()
			return application{}, nil, fmt.Errorf("kafka producer: %w", err)
		}
		cleanups = append(cleanups, func() { _ = producer.Close() })
		publisher = producer

		consumer, err = kafka.NewConsumer(cfg.KafkaBrokers, kafka.DefaultGroupID, &notify.BookingEventHandler{
			Email:  emailNotifier,
			Logger: logger,
		}, logger)
		if err != nil {
			cleanup()
			return application{}, nil, fmt.Errorf("kafka consumer: %w", err)
		}
		cleanups = append(cleanups, func() { _ = consumer.Close() })
	} else if emailNotifier.Enabled() {
		// No broker: notify inline, best effort.
		notifier = emailNotifier
	}

	var agent *blogagentsvc.Service
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			cleanup()
			return application{}, nil, fmt.Errorf("gemini client: %w", err)
		}
		cleanups = append(cleanups, func() { _ = gemini.Close() })
		agent = &blogagentsvc.Service{Generator: gemini}
	}

	availability := &availsvc.Service{Bookings: repos.bookings}
	bookings := &bookingsvc.Service{
		Bookings:  repos.bookings,
		Rooms:     repos.rooms,
		Publisher: publisher,
		Notifier:  notifier,
		Topic:     cfg.BookingTopic,
		Logger:    logger,
	}
	roomsService := &roomssvc.Service{Rooms: repos.rooms}
	galleryService := &gallerysvc.Service{Items: repos.gallery, Uploader: uploader, Logger: logger}
	blogService := blogsvc.NewService(repos.blog)
	contentService := contentsvc.NewService(repos.content)
	authService := &authsvc.Service{
		AdminUser: cfg.AdminUser,
		AdminHash: cfg.AdminPasswordHash,
		Sessions:  sessions,
		Passwords: security.BcryptHasher{},
		Tokens:    security.RandomTokenGenerator{},
		TTL:       cfg.SessionTTL,
		Logger:    logger,
	}

	handlers := ginserver.Handlers{
		Availability: ginserver.AvailabilityHandler{Service: availability, Logger: logger},
		Booking:      ginserver.BookingHandler{Service: bookings, Logger: logger},
		Rooms:        ginserver.RoomsHandler{Service: roomsService, Logger: logger},
		Gallery:      ginserver.GalleryHandler{Service: galleryService, Logger: logger},
		Blog:         ginserver.BlogHandler{Service: blogService, AgentSvc: agent, Logger: logger},
		Content:      ginserver.ContentHandler{Service: contentService, Logger: logger},
		Auth:         ginserver.AuthHandler{Service: authService, CookieSecure: cfg.Env != "dev", Logger: logger},
		RequireAdmin: ginserver.AuthMiddleware{Service: authService, Logger: logger}.Handle,
	}

	return application{
		handlers: handlers,
		consumer: consumer,
		ready:    ready,
		rooms:    repos.rooms,
	}, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger, cleanups *[]func()) (repositories, func() error, error) {
	if cfg.StoreMode == "mongo" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("mongo connect: %w", err)
		}
		*cleanups = append(*cleanups, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Close(closeCtx)
		})
		logger.Info("using mongo storage", "db", cfg.MongoDB)
		ready := func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		return repositories{
			bookings: mongodb.NewBookingRepository(client.DB),
			rooms:    mongodb.NewRoomRepository(client.DB),
			gallery:  mongodb.NewGalleryRepository(client.DB),
			blog:     mongodb.NewBlogRepository(client.DB),
			content:  mongodb.NewContentRepository(client.DB),
		}, ready, nil
	}

	logger.Info("using in-memory storage")
	return repositories{
		bookings: memory.NewBookingRepository(),
		rooms:    memory.NewRoomRepository(),
		gallery:  memory.NewGalleryRepository(),
		blog:     memory.NewBlogRepository(),
		content:  memory.NewContentRepository(),
	}, func() error { return nil }, nil
}

func buildSessionStore(ctx context.Context, cfg config.Config, logger *slog.Logger, cleanups *[]func()) (domainauth.SessionStore, error) {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory session store")
		return memory.NewSessionStore(), nil
	}
	store := cache.NewSessionStore(cfg.RedisAddr, cfg.RedisPassword)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}
	logger.Info("using redis session store", "addr", cfg.RedisAddr)
	return store, nil
}

// loadRoomFixtures seeds rooms from a JSON file so a fresh instance has
// something to show. Existing rooms are never overwritten.
func (a application) loadRoomFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("room fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	var fixtures []roomFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}
	for _, fx := range fixtures {
		if _, err := a.rooms.ByID(ctx, fx.ID); err == nil {
			continue
		}
		room := &domainrooms.Room{
			ID:          fx.ID,
			Name:        fx.Name,
			Type:        fx.Type,
			NightlyRate: fx.NightlyRate,
			Capacity:    fx.Capacity,
			SizeSqm:     fx.SizeSqm,
			Image:       fx.Image,
			Amenities:   append([]string(nil), fx.Amenities...),
			Description: fx.Description,
			Available:   true,
		}
		if err := room.Validate(); err != nil {
			logger.Error("fixture invalid", "room_id", fx.ID, "error", err)
			continue
		}
		if err := a.rooms.Save(ctx, room); err != nil {
			logger.Error("cannot store fixture room", "room_id", fx.ID, "error", err)
			continue
		}
		logger.Info("room fixture imported", "room_id", fx.ID)
	}
	return nil
}

type roomFixture struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	NightlyRate int64    `json:"nightly_rate"`
	Capacity    int      `json:"capacity"`
	SizeSqm     int      `json:"size_sqm"`
	Image       string   `json:"image"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description"`
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
