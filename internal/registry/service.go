package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	errors "github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/core/common/validation"
)

type RepositoryAPI interface {
	Insert(ctx context.Context, table string, values map[string]interface{}) error
	List(ctx context.Context, table string, columns []string, limit int) ([]Row, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Modules() []Module {
	return Modules()
}

func (s *Service) Module(key string) (*Module, error) {
	m, ok := Lookup(key)
	if !ok {
		return nil, errors.ErrModuleNotFound.WithDetails(map[string]string{"module": key})
	}
	return m, nil
}

// Insert stores one record. Unknown columns and missing required values reject the
// whole record before anything is written.
func (s *Service) Insert(ctx context.Context, key string, input map[string]string) (Row, error) {
	m, err := s.Module(key)
	if err != nil {
		return nil, err
	}

	values, err := prepare(m, input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, m.Table, values); err != nil {
		s.logger.Error("failed to insert record", "module", m.Key, "error", err)
		return nil, errors.NewInternalError("failed to insert record", err)
	}

	s.logger.Info("record inserted", "module", m.Key)
	return Row(values), nil
}

// List returns up to ListLimit records ordered by id.
func (s *Service) List(ctx context.Context, key string) ([]Row, error) {
	m, err := s.Module(key)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, m.Table, m.SelectColumns(), ListLimit)
	if err != nil {
		s.logger.Error("failed to list records", "module", m.Key, "error", err)
		return nil, errors.NewInternalError("failed to list records", err)
	}
	return rows, nil
}

func prepare(m *Module, input map[string]string) (map[string]interface{}, error) {
	var unknown []string
	values := make(map[string]interface{}, len(m.Fields))
	for name, raw := range input {
		if !m.HasField(name) {
			unknown = append(unknown, name)
			continue
		}
		values[name] = strings.TrimSpace(raw)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.NewValidationFieldError(unknown[0],
			fmt.Sprintf("unknown column(s) for %s: %s", m.Key, strings.Join(unknown, ", ")),
			errors.ErrCodeUnknownColumn)
	}

	for name, def := range m.Defaults {
		if v, _ := values[name].(string); v == "" {
			values[name] = def
		}
	}

	v := validation.NewValidator()
	for _, name := range m.Required {
		value, _ := values[name].(string)
		v.Field(name, value).Required()
	}
	for name, allowed := range m.Choices {
		value, _ := values[name].(string)
		v.Field(name, value).OneOf(allowed...)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return values, nil
}
