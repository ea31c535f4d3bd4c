package payload

import (
	"time"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
)

// PublicUser is the part of a user that is safe to hand to clients.
type PublicUser struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

func NewPublicUser(user *model.User) PublicUser {
	return PublicUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

type UserResponse struct {
	PublicUser
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		PublicUser: NewPublicUser(user),
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func NewUserResponses(users []*model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}

type UpdateUserRequest struct {
	Name     *string `json:"name"     validate:"omitnil,min=1,max=100"`
	Email    *string `json:"email"    validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=6"`
}

type ChangeRoleRequest struct {
	Role model.Role `json:"role" validate:"required,oneof=admin user"`
}
