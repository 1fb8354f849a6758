package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_backend/internal/events"
	"github.com/Skotchmaster/shop_backend/internal/models"
	"github.com/Skotchmaster/shop_backend/internal/repo"
	"github.com/Skotchmaster/shop_backend/pkg/logging"
)

type BasketService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

// Add inserts the (user, product) pair. The composite unique index is the
// only duplicate guard, so two concurrent adds cannot both succeed.
func (s *BasketService) Add(ctx context.Context, userID, productID uint) (*models.BasketItem, error) {
	l := logging.FromContext(ctx).With("svc", "basket.add")

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	item := models.BasketItem{UserID: userID, ProductID: productID}
	if err := s.Repo.AddToBasket(ctx, &item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("product %d is already in the basket: %w", productID, ErrConflict)
		}
		return nil, fmt.Errorf("add to basket: %w", err)
	}
	item.Product = *product

	event := map[string]interface{}{
		"type":      "basket_item_added",
		"userID":    userID,
		"productID": productID,
	}
	if err := s.Events.PublishEvent(ctx, "basket_events", fmt.Sprint(userID), event); err != nil {
		l.Error("kafka publish error", "error", err)
	}

	return &item, nil
}

// List returns the user's entries with the product eagerly attached.
func (s *BasketService) List(ctx context.Context, userID uint) ([]models.BasketItem, error) {
	return s.Repo.GetBasket(ctx, userID)
}

func (s *BasketService) Remove(ctx context.Context, userID, productID uint) error {
	if err := s.Repo.RemoveFromBasket(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d is not in the basket: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("remove from basket: %w", err)
	}
	return nil
}

// Clear succeeds even when the basket is already empty.
func (s *BasketService) Clear(ctx context.Context, userID uint) error {
	return s.Repo.ClearBasket(ctx, userID)
}
