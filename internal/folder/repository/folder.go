package repository

import (
	"context"
	"errors"

	"github.com/fabianopolone123/ERP-TI/internal"
	folderDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/folder"
	"github.com/fabianopolone123/ERP-TI/internal/folder"
	"gorm.io/gorm"
)

type FolderRepository struct {
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) folder.RepositoryAPI {
	return &FolderRepository{db: db}
}

func (r *FolderRepository) List(ctx context.Context) ([]*folderDatamodel.AccessFolder, error) {
	var folders []*folderDatamodel.AccessFolder
	err := r.db.WithContext(ctx).Order("LOWER(name) ASC").Find(&folders).Error
	return folders, err
}

func (r *FolderRepository) FindByName(ctx context.Context, name string) (*folderDatamodel.AccessFolder, error) {
	var f folderDatamodel.AccessFolder
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *FolderRepository) Create(ctx context.Context, f *folderDatamodel.AccessFolder) error {
	err := r.db.WithContext(ctx).Create(f).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrDuplicateFolder
	}
	return err
}

func (r *FolderRepository) DeleteByNames(ctx context.Context, names []string) (int64, error) {
	res := r.db.WithContext(ctx).Where("name IN ?", names).Delete(&folderDatamodel.AccessFolder{})
	return res.RowsAffected, res.Error
}

func (r *FolderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&folderDatamodel.AccessFolder{}).Count(&count).Error
	return count, err
}

func (r *FolderRepository) CreateBatch(ctx context.Context, folders []*folderDatamodel.AccessFolder) error {
	return r.db.WithContext(ctx).Create(&folders).Error
}
