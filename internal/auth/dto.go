package auth

import (
	"strings"

	errors "github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d RefreshTokenDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required()
	return v.Validate()
}

type SetCredentialsDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d SetCredentialsDTO) Trimmed() SetCredentialsDTO {
	return SetCredentialsDTO{
		Username: strings.TrimSpace(d.Username),
		Password: strings.TrimSpace(d.Password),
	}
}

func (d SetCredentialsDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(150)
	v.Field("password", d.Password).Required()
	return v.Validate()
}

type LoginResponse struct {
	AuthTokens
	Identity errors.Identity `json:"identity"`
}
