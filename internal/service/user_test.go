package service

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_backend/internal/transport"
	"github.com/Skotchmaster/shop_backend/internal/upload"
)

func strptr(s string) *string { return &s }

func registerTestUser(t *testing.T, env *testEnv, login string) uint {
	t.Helper()

	user, err := env.Users.Register(context.Background(), transport.RegisterRequest{
		Login:    login,
		Password: "secret",
		Name:     "Ivan",
		Surname:  "Petrov",
	})
	require.NoError(t, err)
	return user.ID
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.Users.Register(ctx, transport.RegisterRequest{
		Login:      "ipetrov",
		Password:   "secret",
		Name:       "Ivan",
		Surname:    "Petrov",
		Patronymic: strptr("Sergeevich"),
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "ipetrov", user.Login)
	assert.NotEqual(t, "secret", user.PasswordHash)

	// the assigned id is stable across lookups
	byID, err := env.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, user.ID, byID.ID)

	byLogin, err := env.Users.GetByLogin(ctx, "ipetrov")
	require.NoError(t, err)
	require.NotNil(t, byLogin)
	assert.Equal(t, user.ID, byLogin.ID)
}

func TestUserService_Register_DuplicateLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	first := registerTestUser(t, env, "dup")

	_, err := env.Users.Register(ctx, transport.RegisterRequest{
		Login:    "dup",
		Password: "other",
		Name:     "Petr",
		Surname:  "Ivanov",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	byLogin, err := env.Users.GetByLogin(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, first, byLogin.ID)
}

func TestUserService_Register_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.RegisterRequest
	}{
		{name: "empty login", req: transport.RegisterRequest{Password: "x", Name: "a", Surname: "b"}},
		{name: "empty password", req: transport.RegisterRequest{Login: "x", Name: "a", Surname: "b"}},
		{name: "empty name", req: transport.RegisterRequest{Login: "x", Password: "x", Surname: "b"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := env.Users.Register(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	registerTestUser(t, env, "auth_user")

	user, err := env.Users.Authenticate(ctx, "auth_user", "secret")
	require.NoError(t, err)
	assert.Equal(t, "auth_user", user.Login)

	_, err = env.Users.Authenticate(ctx, "auth_user", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.Users.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_GetByID_Absent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	user, err := env.Users.GetByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserService_UpdateProfile_NoOp(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	id := registerTestUser(t, env, "noop")

	before, err := env.Users.GetByID(ctx, id)
	require.NoError(t, err)

	after, err := env.Users.UpdateProfile(ctx, id, transport.UpdateProfileRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUserService_UpdateProfile_PartialFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	id := registerTestUser(t, env, "partial")

	updated, err := env.Users.UpdateProfile(ctx, id, transport.UpdateProfileRequest{
		Name: strptr("Oleg"),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Oleg", updated.Name)
	assert.Equal(t, "Petrov", updated.Surname)
	assert.Equal(t, "partial", updated.Login)
}

func TestUserService_UpdateProfile_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.Users.UpdateProfile(context.Background(), 999, transport.UpdateProfileRequest{
		Name: strptr("x"),
	}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_UpdateProfile_PhotoReplaceCleansOldFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	id := registerTestUser(t, env, "photo")

	first, err := env.Users.UpdateProfile(ctx, id, transport.UpdateProfileRequest{}, &upload.File{
		Name:        "me.png",
		ContentType: "image/png",
		Content:     strings.NewReader("one"),
	})
	require.NoError(t, err)
	require.NotNil(t, first.Photo)
	firstPath := filepath.Join(env.Photos.Dir, path.Base(*first.Photo))
	_, err = os.Stat(firstPath)
	require.NoError(t, err)

	second, err := env.Users.UpdateProfile(ctx, id, transport.UpdateProfileRequest{}, &upload.File{
		Name:        "me2.jpg",
		ContentType: "image/jpeg",
		Content:     strings.NewReader("two"),
	})
	require.NoError(t, err)
	require.NotNil(t, second.Photo)
	assert.NotEqual(t, *first.Photo, *second.Photo)

	_, err = os.Stat(firstPath)
	assert.True(t, os.IsNotExist(err), "replaced photo must be removed from disk")
}

func TestUserService_UpdateProfile_RejectsBadPhoto(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	id := registerTestUser(t, env, "badphoto")

	_, err := env.Users.UpdateProfile(ctx, id, transport.UpdateProfileRequest{}, &upload.File{
		Name:        "me.bmp",
		ContentType: "image/bmp",
		Content:     strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}
