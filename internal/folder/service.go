package folder

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/core/common/validation"
	folderDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/folder"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*folderDatamodel.AccessFolder, error)
	FindByName(ctx context.Context, name string) (*folderDatamodel.AccessFolder, error)
	Create(ctx context.Context, f *folderDatamodel.AccessFolder) error
	DeleteByNames(ctx context.Context, names []string) (int64, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, folders []*folderDatamodel.AccessFolder) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]*Folder, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list access folders", "error", err)
		return nil, errors.NewInternalError("failed to list access folders", err)
	}
	folders := make([]*Folder, 0, len(rows))
	for _, row := range rows {
		folders = append(folders, FromDataModel(row))
	}
	return folders, nil
}

func (s *Service) Add(ctx context.Context, dto AddFolderDTO) (*Folder, error) {
	name := strings.TrimSpace(dto.Name)

	v := validation.NewValidator()
	v.Field("name", name).Required().MaxLength(120)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, errors.NewInternalError("failed to check folder name", err)
	}
	if existing != nil {
		return nil, errors.ErrDuplicateFolder
	}

	row := &folderDatamodel.AccessFolder{Name: name}
	if err := s.repo.Create(ctx, row); err != nil {
		if errors.IsType(err, errors.ErrorTypeConflict) {
			return nil, err
		}
		s.logger.Error("failed to add access folder", "name", name, "error", err)
		return nil, errors.NewInternalError("failed to add access folder", err)
	}

	s.logger.Info("access folder added", "folder_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

// Remove deletes the named folders in one statement. Unknown names are ignored.
func (s *Service) Remove(ctx context.Context, dto RemoveFoldersDTO) (int64, error) {
	names := make([]string, 0, len(dto.Names))
	for _, n := range dto.Names {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return 0, errors.NewValidationFieldError("names", "select at least one folder", errors.ErrCodeRequiredField)
	}

	removed, err := s.repo.DeleteByNames(ctx, names)
	if err != nil {
		s.logger.Error("failed to remove access folders", "names", names, "error", err)
		return 0, errors.NewInternalError("failed to remove access folders", err)
	}
	s.logger.Info("access folders removed", "requested", len(names), "removed", removed)
	return removed, nil
}

// SeedDefaults fills an empty table with DefaultFolders and leaves a populated one alone.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, errors.NewInternalError("failed to count access folders", err)
	}
	if count > 0 {
		s.logger.Debug("access folders already present, skipping defaults", "count", count)
		return 0, nil
	}

	rows := make([]*folderDatamodel.AccessFolder, 0, len(DefaultFolders))
	for _, name := range DefaultFolders {
		rows = append(rows, &folderDatamodel.AccessFolder{Name: name})
	}
	if err := s.repo.CreateBatch(ctx, rows); err != nil {
		s.logger.Error("failed to seed access folders", "error", err)
		return 0, errors.NewInternalError("failed to seed access folders", err)
	}

	s.logger.Info("default access folders seeded", "count", len(rows))
	return len(rows), nil
}
