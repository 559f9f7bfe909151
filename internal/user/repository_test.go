package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "password", "is_admin"}).
			AddRow(userID, "max@f1store.test", "hashed", false)

		mock.ExpectQuery("INSERT INTO profiles").
			WithArgs("max@f1store.test", "hashed").
			WillReturnRows(rows)

		u, err := repo.Create(context.Background(), "max@f1store.test", "hashed")
		assert.NoError(t, err)
		assert.Equal(t, userID, u.ID)
		assert.False(t, u.IsAdmin)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO profiles").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "profiles_email_key"`))

		_, err := repo.Create(context.Background(), "max@f1store.test", "hashed")
		assert.Error(t, err)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "password", "is_admin"}).
			AddRow(userID, "admin@f1store.test", "hashed", true)

		mock.ExpectQuery("SELECT id, email, password, is_admin FROM profiles").
			WithArgs("admin@f1store.test").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(context.Background(), "admin@f1store.test")
		assert.NoError(t, err)
		assert.True(t, u.IsAdmin)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, password, is_admin FROM profiles").
			WithArgs("nobody@f1store.test").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(context.Background(), "nobody@f1store.test")
		assert.Error(t, err)
	})
}

func TestRepository_GetProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uuid.New()
	fullName := "Max Verstappen"

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "phone", "is_admin", "created_at", "updated_at"}).
			AddRow(userID, "max@f1store.test", fullName, nil, nil, false, time.Now(), time.Now())

		mock.ExpectQuery("SELECT id, email, full_name").
			WithArgs(userID).
			WillReturnRows(rows)

		p, err := repo.GetProfile(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, fullName, *p.FullName)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, full_name").
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetProfile(context.Background(), userID)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uuid.New()
	newName := "Oscar Piastri"

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "phone", "is_admin", "created_at", "updated_at"}).
			AddRow(userID, "oscar@f1store.test", newName, nil, nil, false, time.Now(), time.Now())

		mock.ExpectQuery("UPDATE profiles").
			WithArgs(userID, &newName, nil, nil).
			WillReturnRows(rows)

		p, err := repo.UpdateProfile(context.Background(), UpdateProfileParams{
			UserID:   userID,
			FullName: &newName,
		})
		require.NoError(t, err)
		assert.Equal(t, newName, *p.FullName)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE profiles").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateProfile(context.Background(), UpdateProfileParams{UserID: userID})
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}
