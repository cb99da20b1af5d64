package user

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/core/common/validation"
	userDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	CreateUser(ctx context.Context, u *userDatamodel.User) error
	GetUserByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	ListUsers(ctx context.Context) ([]*userDatamodel.User, error)

	CreateGroup(ctx context.Context, g *userDatamodel.UserGroup) error
	GetGroupByID(ctx context.Context, id int64) (*userDatamodel.UserGroup, error)
	FindGroupByName(ctx context.Context, name string) (*userDatamodel.UserGroup, error)
	ListGroups(ctx context.Context) ([]*userDatamodel.UserGroup, error)

	MembershipExists(ctx context.Context, groupID, userID int64) (bool, error)
	AddMember(ctx context.Context, groupID, userID int64) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
	GroupMembers(ctx context.Context, groupID int64) ([]*userDatamodel.User, error)
	GroupNamesForUser(ctx context.Context, userID int64) ([]string, error)
	GroupNamesByUser(ctx context.Context) (map[int64][]string, error)
}

type Service struct {
	repo       RepositoryAPI
	staffGroup string
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, staffGroup string, logger *slog.Logger) *Service {
	if strings.TrimSpace(staffGroup) == "" {
		staffGroup = errors.DefaultStaffGroup
	}
	return &Service{
		repo:       repo,
		staffGroup: staffGroup,
		logger:     logger,
	}
}

func (s *Service) StaffGroupName() string {
	return s.staffGroup
}

func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO) (*User, error) {
	dto = dto.Trimmed()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &userDatamodel.User{
		Department: dto.Department,
		FullName:   dto.FullName,
		Phone:      dto.Phone,
		Extension:  dto.Extension,
		Email:      dto.Email,
	}
	if err := s.repo.CreateUser(ctx, row); err != nil {
		s.logger.Error("failed to create user", "error", err)
		return nil, errors.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", row.ID, "department", row.Department)
	return FromDataModel(row), nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	row, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load user", err)
	}
	if row == nil {
		return nil, errors.ErrUserNotFound
	}

	u := FromDataModel(row)
	label, err := s.GroupLabelsForUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.GroupLabel = label
	return u, nil
}

// ListUsers returns every user with the group label computed from current memberships.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users", err)
	}

	labels, err := s.repo.GroupNamesByUser(ctx)
	if err != nil {
		s.logger.Error("failed to load group labels", "error", err)
		return nil, errors.NewInternalError("failed to load group labels", err)
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		u := FromDataModel(row)
		u.GroupLabel = JoinLabels(labels[row.ID])
		users = append(users, u)
	}
	return users, nil
}

// GroupLabelsForUser is read straight from the membership join on every call.
func (s *Service) GroupLabelsForUser(ctx context.Context, userID int64) (string, error) {
	names, err := s.repo.GroupNamesForUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load group names", "user_id", userID, "error", err)
		return "", errors.NewInternalError("failed to load group names", err)
	}
	return JoinLabels(names), nil
}

func (s *Service) CreateGroup(ctx context.Context, dto CreateGroupDTO) (*Group, error) {
	name := strings.TrimSpace(dto.Name)

	v := validation.NewValidator()
	v.Field("name", name).Required().MaxLength(120)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindGroupByName(ctx, name)
	if err != nil {
		return nil, errors.NewInternalError("failed to check group name", err)
	}
	if existing != nil {
		return nil, errors.ErrDuplicateGroup
	}

	row := &userDatamodel.UserGroup{Name: name}
	if err := s.repo.CreateGroup(ctx, row); err != nil {
		if errors.IsType(err, errors.ErrorTypeConflict) {
			return nil, err
		}
		s.logger.Error("failed to create group", "name", name, "error", err)
		return nil, errors.NewInternalError("failed to create group", err)
	}

	s.logger.Info("group created", "group_id", row.ID, "name", row.Name)
	return GroupFromDataModel(row), nil
}

func (s *Service) ListGroups(ctx context.Context) ([]*Group, error) {
	rows, err := s.repo.ListGroups(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list groups", err)
	}
	groups := make([]*Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, GroupFromDataModel(row))
	}
	return groups, nil
}

func (s *Service) AssignToGroup(ctx context.Context, groupID, userID int64) error {
	if err := s.ensureGroupAndUser(ctx, groupID, userID); err != nil {
		return err
	}

	exists, err := s.repo.MembershipExists(ctx, groupID, userID)
	if err != nil {
		return errors.NewInternalError("failed to check membership", err)
	}
	if exists {
		return errors.ErrDuplicateMembership
	}

	if err := s.repo.AddMember(ctx, groupID, userID); err != nil {
		if errors.IsType(err, errors.ErrorTypeConflict) {
			return err
		}
		s.logger.Error("failed to add group member", "group_id", groupID, "user_id", userID, "error", err)
		return errors.NewInternalError("failed to add group member", err)
	}

	s.logger.Info("user added to group", "group_id", groupID, "user_id", userID)
	return nil
}

func (s *Service) RemoveFromGroup(ctx context.Context, groupID, userID int64) error {
	if err := s.repo.RemoveMember(ctx, groupID, userID); err != nil {
		s.logger.Error("failed to remove group member", "group_id", groupID, "user_id", userID, "error", err)
		return errors.NewInternalError("failed to remove group member", err)
	}
	s.logger.Info("user removed from group", "group_id", groupID, "user_id", userID)
	return nil
}

func (s *Service) GroupMembers(ctx context.Context, groupID int64) ([]*User, error) {
	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load group", err)
	}
	if group == nil {
		return nil, errors.ErrGroupNotFound
	}
	return s.members(ctx, group.ID)
}

// StaffMembers returns the current members of the support staff group, sorted by
// lowercase name. A missing group yields an empty roster.
func (s *Service) StaffMembers(ctx context.Context) ([]*User, error) {
	group, err := s.repo.FindGroupByName(ctx, s.staffGroup)
	if err != nil {
		return nil, errors.NewInternalError("failed to load staff group", err)
	}
	if group == nil {
		return []*User{}, nil
	}
	return s.members(ctx, group.ID)
}

// IsStaff matches by user id when known, otherwise by display name.
func (s *Service) IsStaff(ctx context.Context, id errors.Identity) (bool, error) {
	staff, err := s.StaffMembers(ctx)
	if err != nil {
		return false, err
	}
	for _, member := range staff {
		if id.UserID != 0 && member.ID == id.UserID {
			return true, nil
		}
		if strings.TrimSpace(id.Name) != "" && member.MatchesName(id.Name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) members(ctx context.Context, groupID int64) ([]*User, error) {
	rows, err := s.repo.GroupMembers(ctx, groupID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load group members", err)
	}
	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) ensureGroupAndUser(ctx context.Context, groupID, userID int64) error {
	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return errors.NewInternalError("failed to load group", err)
	}
	if group == nil {
		return errors.ErrGroupNotFound
	}
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return errors.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return errors.ErrUserNotFound
	}
	return nil
}
