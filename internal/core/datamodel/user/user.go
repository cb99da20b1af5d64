package user

import "time"

// User keeps two credential columns: Password holds a legacy plaintext value
// until the first successful login migrates it into PasswordHash.
type User struct {
	ID           int64     `gorm:"primaryKey"`
	Department   string    `gorm:"column:department;not null"`
	FullName     string    `gorm:"column:full_name;not null"`
	Phone        string    `gorm:"column:phone;not null;default:''"`
	Extension    string    `gorm:"column:extension;not null;default:''"`
	Email        string    `gorm:"column:email;not null;default:''"`
	Username     string    `gorm:"column:username;not null;default:''"`
	Password     string    `gorm:"column:password;not null;default:''"`
	PasswordHash string    `gorm:"column:password_hash;not null;default:''"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "users" }

type UserGroup struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserGroup) TableName() string { return "user_groups" }

type GroupMembership struct {
	ID      int64 `gorm:"primaryKey"`
	GroupID int64 `gorm:"column:group_id;not null;uniqueIndex:idx_group_member"`
	UserID  int64 `gorm:"column:user_id;not null;uniqueIndex:idx_group_member"`
}

func (GroupMembership) TableName() string { return "user_group_members" }
