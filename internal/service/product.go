package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_backend/internal/events"
	"github.com/Skotchmaster/shop_backend/internal/models"
	"github.com/Skotchmaster/shop_backend/internal/repo"
	"github.com/Skotchmaster/shop_backend/internal/search"
	"github.com/Skotchmaster/shop_backend/internal/transport"
	"github.com/Skotchmaster/shop_backend/internal/upload"
	"github.com/Skotchmaster/shop_backend/pkg/logging"
)

type ProductService struct {
	Repo   *repo.GormRepo
	Images *upload.Store
	Events *events.Producer
	Index  *search.Index
}

func (s *ProductService) saveImage(image *upload.File) (*string, error) {
	ref, err := s.Images.Save(image)
	if err != nil {
		if errors.Is(err, upload.ErrMissingName) || errors.Is(err, upload.ErrUnsupportedType) {
			return nil, fmt.Errorf("%v: %w", err, ErrValidation)
		}
		return nil, fmt.Errorf("save image: %w", ErrStorage)
	}
	return &ref, nil
}

func (s *ProductService) publish(ctx context.Context, event map[string]interface{}) {
	l := logging.FromContext(ctx)
	if err := s.Events.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		l.Error("kafka publish error", "error", err)
	}
}

func (s *ProductService) reindex(ctx context.Context, prod *models.Product) {
	if err := s.Index.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(ctx).Warn("product index failed", "productID", prod.ID, "error", err)
	}
}

// Create validates and stores the image before touching the database, so a
// rejected upload leaves no row and no file behind.
func (s *ProductService) Create(ctx context.Context, req transport.CreateProductRequest, image *upload.File) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	var photo *string
	if image != nil {
		ref, err := s.saveImage(image)
		if err != nil {
			return nil, err
		}
		photo = ref
	}

	prod := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Photo:       photo,
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.reindex(ctx, &prod)
	s.publish(ctx, map[string]interface{}{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return &prod, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return prod, nil
}

func (s *ProductService) List(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

// Update replaces the stored image when a new one is supplied: the old file
// is removed first (failures swallowed), then the new one is persisted.
func (s *ProductService) Update(ctx context.Context, id uint, req transport.PatchProductRequest, image *upload.File) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.update")

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	var photo *string
	if image != nil {
		if s.Images.CleanupOnReplace && current.Photo != nil {
			if err := s.Images.Remove(*current.Photo); err != nil {
				l.Warn("old image cleanup failed", "ref", *current.Photo, "error", err)
			}
		}
		ref, err := s.saveImage(image)
		if err != nil {
			return nil, err
		}
		photo = ref
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id, photo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("update product: %w", ErrStorage)
	}

	s.reindex(ctx, prod)
	s.publish(ctx, map[string]interface{}{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return prod, nil
}

// Delete removes the stored image (if any, failures swallowed) and then the row.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "product.delete")

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if current.Photo != nil {
		if err := s.Images.Remove(*current.Photo); err != nil {
			l.Warn("image cleanup failed", "ref", *current.Photo, "error", err)
		}
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete product: %w", err)
	}

	if err := s.Index.DeleteProduct(ctx, id); err != nil {
		l.Warn("product index delete failed", "productID", id, "error", err)
	}
	s.publish(ctx, map[string]interface{}{
		"type":      "product_deleted",
		"productID": id,
	})

	return nil
}

func (s *ProductService) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	return s.Index.Search(ctx, query, from, size)
}
