package repository

import (
	"context"
	"errors"

	"github.com/fabianopolone123/ERP-TI/internal/auth"
	userDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// Repository reads and writes the credential columns of the users table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).
		Where("LOWER(TRIM(username)) = LOWER(TRIM(?))", username).
		Order("id ASC").
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// AnyCredentials reports whether at least one user has a login and a password of either kind.
func (r *Repository) AnyCredentials(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("TRIM(username) <> ''").
		Where("TRIM(password) <> '' OR TRIM(password_hash) <> ''").
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) UsernameTaken(ctx context.Context, username string, exceptUserID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("LOWER(TRIM(username)) = LOWER(TRIM(?)) AND id <> ?", username, exceptUserID).
		Count(&count).Error
	return count > 0, err
}

// MigratePassword swaps a plaintext password for its digest in one statement. A second
// call finds no plaintext and changes nothing.
func (r *Repository) MigratePassword(ctx context.Context, userID int64, hash string) error {
	return r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ? AND password <> ''", userID).
		Updates(map[string]interface{}{"password_hash": hash, "password": ""}).Error
}

func (r *Repository) SetCredentials(ctx context.Context, userID int64, username, hash string) error {
	return r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"username": username, "password_hash": hash, "password": ""}).Error
}
