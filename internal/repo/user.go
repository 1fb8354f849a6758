package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_backend/internal/models"
	"github.com/Skotchmaster/shop_backend/internal/transport"
)

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// UpdateProfile overwrites only the supplied fields. passwordHash and photo
// arrive already prepared by the service layer.
func (r *GormRepo) UpdateProfile(ctx context.Context, id uint, req transport.UpdateProfileRequest, passwordHash, photo *string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Surname != nil {
			user.Surname = *req.Surname
		}
		if req.Patronymic != nil {
			user.Patronymic = req.Patronymic
		}
		if req.Login != nil {
			user.Login = *req.Login
		}
		if passwordHash != nil {
			user.PasswordHash = *passwordHash
		}
		if photo != nil {
			user.Photo = photo
		}

		return tx.Save(&user).Error
	}); err != nil {
		return nil, err
	}
	return &user, nil
}
