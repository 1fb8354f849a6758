package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_backend/internal/events"
	"github.com/Skotchmaster/shop_backend/internal/hash"
	"github.com/Skotchmaster/shop_backend/internal/models"
	"github.com/Skotchmaster/shop_backend/internal/repo"
	"github.com/Skotchmaster/shop_backend/internal/transport"
	"github.com/Skotchmaster/shop_backend/internal/upload"
	"github.com/Skotchmaster/shop_backend/pkg/logging"
)

type UserService struct {
	Repo   *repo.GormRepo
	Photos *upload.Store
	Events *events.Producer
}

// GetByID returns (nil, nil) when no such user exists.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return user, err
}

// GetByLogin returns (nil, nil) when no such user exists.
func (s *UserService) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	user, err := s.Repo.GetUserByLogin(ctx, login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return user, err
}

func (s *UserService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.register")

	if req.Login == "" || req.Password == "" {
		return nil, fmt.Errorf("login and password are required: %w", ErrValidation)
	}
	if req.Name == "" || req.Surname == "" {
		return nil, fmt.Errorf("name and surname are required: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         req.Name,
		Surname:      req.Surname,
		Patronymic:   req.Patronymic,
		Login:        req.Login,
		PasswordHash: pwHash,
	}

	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("login %q: %w", req.Login, ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	event := map[string]interface{}{
		"type":   "user_registered",
		"userID": user.ID,
		"login":  user.Login,
	}
	if err := s.Events.PublishEvent(ctx, "user_events", fmt.Sprint(user.ID), event); err != nil {
		l.Error("kafka publish error", "error", err)
	}

	return &user, nil
}

// Authenticate fails the same way for an unknown login and a wrong
// password. The bcrypt comparison is constant time.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.authenticate")

	user, err := s.Repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	event := map[string]interface{}{
		"type":   "user_logged_in",
		"userID": user.ID,
		"login":  user.Login,
	}
	if err := s.Events.PublishEvent(ctx, "user_events", fmt.Sprint(user.ID), event); err != nil {
		l.Error("kafka publish error", "error", err)
	}

	return user, nil
}

// UpdateProfile overwrites only the supplied fields. A request with no
// fields and no photo returns the current row untouched.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, req transport.UpdateProfileRequest, photo *upload.File) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.update_profile")

	current, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	var photoRef *string
	if photo != nil {
		ref, err := s.Photos.Save(photo)
		if err != nil {
			if errors.Is(err, upload.ErrMissingName) || errors.Is(err, upload.ErrUnsupportedType) {
				return nil, fmt.Errorf("%v: %w", err, ErrValidation)
			}
			return nil, fmt.Errorf("save photo: %w", ErrStorage)
		}
		if s.Photos.CleanupOnReplace && current.Photo != nil {
			if err := s.Photos.Remove(*current.Photo); err != nil {
				l.Warn("old photo cleanup failed", "ref", *current.Photo, "error", err)
			}
		}
		photoRef = &ref
	}

	var pwHash *string
	if req.Password != nil {
		h, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		pwHash = &h
	}

	if req.Name == nil && req.Surname == nil && req.Patronymic == nil &&
		req.Login == nil && pwHash == nil && photoRef == nil {
		return current, nil
	}

	updated, err := s.Repo.UpdateProfile(ctx, id, req, pwHash, photoRef)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("login is taken: %w", ErrConflict)
		}
		return nil, fmt.Errorf("update profile: %w", ErrStorage)
	}
	return updated, nil
}
