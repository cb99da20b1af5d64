package user

import (
	"strings"

	errors "github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/core/common/validation"
)

type CreateUserDTO struct {
	Department string `json:"department"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Extension  string `json:"extension"`
	Email      string `json:"email"`
}

func (d CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("department", d.Department).Required().MaxLength(120)
	v.Field("full_name", d.FullName).Required().MaxLength(160)
	return v.Validate()
}

func (d CreateUserDTO) Trimmed() CreateUserDTO {
	return CreateUserDTO{
		Department: strings.TrimSpace(d.Department),
		FullName:   strings.TrimSpace(d.FullName),
		Phone:      strings.TrimSpace(d.Phone),
		Extension:  strings.TrimSpace(d.Extension),
		Email:      strings.TrimSpace(d.Email),
	}
}

type CreateGroupDTO struct {
	Name string `json:"name"`
}

type MembershipDTO struct {
	UserID int64 `json:"user_id"`
}

type GroupLabelResponse struct {
	UserID int64  `json:"user_id"`
	Label  string `json:"label"`
}

type UsersResponse struct {
	Users []*User `json:"users"`
}

type GroupsResponse struct {
	Groups []*Group `json:"groups"`
}
