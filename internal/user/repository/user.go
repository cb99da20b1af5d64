package repository

import (
	"context"
	"errors"

	"github.com/fabianopolone123/ERP-TI/internal"
	userDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/user"
	"github.com/fabianopolone123/ERP-TI/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
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

func (r *UserRepository) ListUsers(ctx context.Context) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.WithContext(ctx).Order("LOWER(full_name) ASC").Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) CreateGroup(ctx context.Context, g *userDatamodel.UserGroup) error {
	err := r.db.WithContext(ctx).Create(g).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrDuplicateGroup
	}
	return err
}

func (r *UserRepository) GetGroupByID(ctx context.Context, id int64) (*userDatamodel.UserGroup, error) {
	var g userDatamodel.UserGroup
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// FindGroupByName ignores case and surrounding whitespace.
func (r *UserRepository) FindGroupByName(ctx context.Context, name string) (*userDatamodel.UserGroup, error) {
	var g userDatamodel.UserGroup
	err := r.db.WithContext(ctx).
		Where("LOWER(TRIM(name)) = LOWER(TRIM(?))", name).
		Order("id ASC").
		First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *UserRepository) ListGroups(ctx context.Context) ([]*userDatamodel.UserGroup, error) {
	var groups []*userDatamodel.UserGroup
	err := r.db.WithContext(ctx).Order("LOWER(name) ASC").Find(&groups).Error
	return groups, err
}

func (r *UserRepository) MembershipExists(ctx context.Context, groupID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	err := r.db.WithContext(ctx).Create(&userDatamodel.GroupMembership{GroupID: groupID, UserID: userID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrDuplicateMembership
	}
	return err
}

func (r *UserRepository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	return r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&userDatamodel.GroupMembership{}).Error
}

func (r *UserRepository) GroupMembers(ctx context.Context, groupID int64) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.WithContext(ctx).
		Joins("JOIN user_group_members m ON m.user_id = users.id").
		Where("m.group_id = ?", groupID).
		Order("LOWER(users.full_name) ASC").
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) GroupNamesForUser(ctx context.Context, userID int64) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("user_groups g").
		Joins("JOIN user_group_members m ON m.group_id = g.id").
		Where("m.user_id = ?", userID).
		Order("LOWER(g.name) ASC").
		Pluck("g.name", &names).Error
	return names, err
}

func (r *UserRepository) GroupNamesByUser(ctx context.Context) (map[int64][]string, error) {
	type pair struct {
		UserID int64
		Name   string
	}
	var pairs []pair
	err := r.db.WithContext(ctx).
		Table("user_group_members m").
		Select("m.user_id AS user_id, g.name AS name").
		Joins("JOIN user_groups g ON g.id = m.group_id").
		Order("m.user_id ASC").
		Order("LOWER(g.name) ASC").
		Scan(&pairs).Error
	if err != nil {
		return nil, err
	}

	out := make(map[int64][]string)
	for _, p := range pairs {
		out[p.UserID] = append(out[p.UserID], p.Name)
	}
	return out, nil
}
