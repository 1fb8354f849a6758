package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shop_backend/internal/config"
	"github.com/Skotchmaster/shop_backend/internal/events"
	"github.com/Skotchmaster/shop_backend/internal/httpserver"
	"github.com/Skotchmaster/shop_backend/internal/models"
	"github.com/Skotchmaster/shop_backend/internal/repo"
	"github.com/Skotchmaster/shop_backend/internal/search"
	"github.com/Skotchmaster/shop_backend/internal/service"
	"github.com/Skotchmaster/shop_backend/internal/upload"
	pkgdb "github.com/Skotchmaster/shop_backend/pkg/db"
	"github.com/Skotchmaster/shop_backend/pkg/logging"
	loggingmw "github.com/Skotchmaster/shop_backend/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.BasketItem{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	userPhotos, err := upload.NewStore(filepath.Join(cfg.UploadDir, "users"), cfg.UploadBaseURL+"/users", upload.ImageExts)
	if err != nil {
		log.Fatalf("upload store: %v", err)
	}
	productImages, err := upload.NewStore(filepath.Join(cfg.UploadDir, "products"), cfg.UploadBaseURL+"/products", upload.ImageExts)
	if err != nil {
		log.Fatalf("upload store: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	var index *search.Index
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index = &search.Index{ES: es, Name: "products"}
	}

	r := &repo.GormRepo{DB: db}
	userSvc := &service.UserService{Repo: r, Photos: userPhotos, Events: producer}
	productSvc := &service.ProductService{Repo: r, Images: productImages, Events: producer, Index: index}
	basketSvc := &service.BasketService{Repo: r, Events: producer}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: userSvc, JWTSecret: cfg.JWTSecret},
		UserHandler:    &httpserver.UserHTTP{Svc: userSvc},
		ProductHandler: &httpserver.ProductHTTP{Svc: productSvc},
		BasketHandler:  &httpserver.BasketHTTP{Svc: basketSvc},
		JWTSecret:      cfg.JWTSecret,
		UploadDir:      cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("%s stopped", cfg.ServiceName)
}
