package user

import (
	"context"
	"errors"
	"testing"

	"github.com/AyAchi-19/f1-store/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, password string) (User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		created := User{ID: uuid.New(), Email: "new@f1store.test"}
		repo.On("Create", mock.Anything, "new@f1store.test", mock.AnythingOfType("string")).
			Return(created, nil)

		token, u, err := svc.Register(context.Background(), "new@f1store.test", "podium123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, created.ID, u.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, "dup@f1store.test", mock.AnythingOfType("string")).
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "profiles_email_key"`))

		_, _, err := svc.Register(context.Background(), "dup@f1store.test", "podium123")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := auth.HashPassword("podium123")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", mock.Anything, "max@f1store.test").
			Return(User{ID: uuid.New(), Email: "max@f1store.test", Password: hashed}, nil)

		token, _, err := svc.Login(context.Background(), "max@f1store.test", "podium123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", mock.Anything, "max@f1store.test").
			Return(User{Password: hashed}, nil)

		_, _, err := svc.Login(context.Background(), "max@f1store.test", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", mock.Anything, "ghost@f1store.test").
			Return(User{}, errors.New("sql: no rows in result set"))

		_, _, err := svc.Login(context.Background(), "ghost@f1store.test", "podium123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Profile(t *testing.T) {
	userID := uuid.New()
	name := "Charles Leclerc"

	t.Run("GetProfile passthrough", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetProfile", mock.Anything, userID).
			Return(&Profile{ID: userID, FullName: &name}, nil)

		p, err := svc.GetProfile(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, name, *p.FullName)
	})

	t.Run("UpdateProfile passthrough", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		params := UpdateProfileParams{UserID: userID, FullName: &name}
		repo.On("UpdateProfile", mock.Anything, params).
			Return(&Profile{ID: userID, FullName: &name}, nil)

		p, err := svc.UpdateProfile(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, name, *p.FullName)
	})
}
