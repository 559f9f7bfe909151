package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AyAchi-19/f1-store/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, email, password string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, password string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO profiles (email, password) VALUES ($1, $2) RETURNING id, email, password, is_admin",
		email, password,
	).Scan(&u.ID, &u.Email, &u.Password, &u.IsAdmin)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password, is_admin FROM profiles WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.IsAdmin)

	return u, err
}

// GetProfile fetches a user's profile by user ID.
func (r *repository) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetProfile"),
		zap.String("user_id", userID.String()),
	)

	query := `
		SELECT id, email, full_name, avatar_url, phone, is_admin, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, userID)

	var p Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.Phone, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("profile not found")
			return nil, ErrProfileNotFound
		}
		log.Error("failed to scan profile", zap.Error(err))
		return nil, err
	}

	return &p, nil
}

// UpdateProfile updates an existing profile.
func (r *repository) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.String("user_id", params.UserID.String()),
	)

	// COALESCE keeps existing values when the input field is nil
	query := `
		UPDATE profiles
		SET full_name = COALESCE($2, full_name),
			avatar_url = COALESCE($3, avatar_url),
			phone = COALESCE($4, phone),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, full_name, avatar_url, phone, is_admin, created_at, updated_at
	`

	var p Profile
	err := r.db.QueryRowContext(ctx, query,
		params.UserID, params.FullName, params.AvatarURL, params.Phone,
	).Scan(
		&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.Phone, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}

	log.Info("profile updated successfully")
	return &p, nil
}
