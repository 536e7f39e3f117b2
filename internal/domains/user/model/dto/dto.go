package dto

import (
	"strings"

	"resto/internal/domains/user/model"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string  `json:"email"     validate:"required,email"`
	Password string  `json:"password"  validate:"required,min=8,max=72"`
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Role     string  `json:"role"      validate:"omitempty,oneof=admin superadmin"`
	IsActive *bool   `json:"is_active"`
}

func (r *CreateUserRequest) ToModel(username, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleAdmin
	}

	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		FullName: r.FullName,
		Role:     role,
		IsActive: active,
		Metadata: gModel.NewMetadata(username, timezone.Now()),
	}
}

type UpdateUserRequest struct {
	Email    string  `db:"email"     json:"email"     validate:"omitempty,email"`
	FullName *string `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Role     string  `db:"role"      json:"role"      validate:"omitempty,oneof=admin superadmin"`
	IsActive *bool   `db:"is_active" json:"is_active"`
}

// LocksOut reports whether applying the update to the caller's own account would
// take away its superadmin role or deactivate it.
func (r *UpdateUserRequest) LocksOut(current model.User) bool {
	if r.IsActive != nil && !*r.IsActive {
		return true
	}

	return current.Role == constant.RoleSuperAdmin && r.Role != "" && r.Role != constant.RoleSuperAdmin
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"is_active"`
	LastLogin *string `json:"last_login"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(m model.User) {
	r.ID = m.ID
	r.Email = m.Email
	r.FullName = m.FullName
	r.Role = m.Role
	r.IsActive = m.IsActive
	r.LastLogin = nil

	if m.LastLogin != nil {
		lastLogin := m.LastLogin.Format(constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(m.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
