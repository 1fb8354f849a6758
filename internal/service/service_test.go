package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_backend/internal/events"
	"github.com/Skotchmaster/shop_backend/internal/models"
	"github.com/Skotchmaster/shop_backend/internal/repo"
	"github.com/Skotchmaster/shop_backend/internal/upload"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.BasketItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newTestStore(t *testing.T) *upload.Store {
	t.Helper()

	s, err := upload.NewStore(t.TempDir(), "/uploads/test", upload.ImageExts)
	require.NoError(t, err)
	return s
}

type testEnv struct {
	DB      *gorm.DB
	Users   *UserService
	Prods   *ProductService
	Baskets *BasketService
	Photos  *upload.Store
	Images  *upload.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	r := &repo.GormRepo{DB: db}
	producer := &events.Producer{}
	photos := newTestStore(t)
	images := newTestStore(t)

	return &testEnv{
		DB:      db,
		Users:   &UserService{Repo: r, Photos: photos, Events: producer},
		Prods:   &ProductService{Repo: r, Images: images, Events: producer},
		Baskets: &BasketService{Repo: r, Events: producer},
		Photos:  photos,
		Images:  images,
	}
}
