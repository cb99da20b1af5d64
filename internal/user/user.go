package user

import (
	"strings"
	"time"

	userDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/user"
)

type User struct {
	ID             int64     `json:"id"`
	Department     string    `json:"department"`
	FullName       string    `json:"full_name"`
	GroupLabel     string    `json:"group_label"`
	Phone          string    `json:"phone"`
	Extension      string    `json:"extension"`
	Email          string    `json:"email"`
	Username       string    `json:"username,omitempty"`
	HasCredentials bool      `json:"has_credentials"`
	CreatedAt      time.Time `json:"created_at"`
}

type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MatchesName compares names the way the staff roster does: trimmed, case-insensitive.
func (u *User) MatchesName(name string) bool {
	return normalizeName(u.FullName) == normalizeName(name)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// JoinLabels renders group names as the comma-separated profile label.
func JoinLabels(names []string) string {
	return strings.Join(names, ", ")
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:             u.ID,
		Department:     u.Department,
		FullName:       u.FullName,
		Phone:          u.Phone,
		Extension:      u.Extension,
		Email:          u.Email,
		Username:       u.Username,
		HasCredentials: strings.TrimSpace(u.Username) != "" && (u.PasswordHash != "" || strings.TrimSpace(u.Password) != ""),
		CreatedAt:      u.CreatedAt,
	}
}

func GroupFromDataModel(g *userDatamodel.UserGroup) *Group {
	return &Group{ID: g.ID, Name: g.Name}
}
