package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_backend/internal/models"
)

func (r *GormRepo) GetBasket(ctx context.Context, userID uint) ([]models.BasketItem, error) {
	var items []models.BasketItem
	if err := r.DB.WithContext(ctx).Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToBasket relies on the (user_id, product_id) unique index: a duplicate
// pair comes back as gorm.ErrDuplicatedKey, there is no pre-insert read.
func (r *GormRepo) AddToBasket(ctx context.Context, item *models.BasketItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) RemoveFromBasket(ctx context.Context, userID, productID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.BasketItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearBasket(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.BasketItem{}).Error
}
