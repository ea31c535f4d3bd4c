package payload

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
	Name    string `json:"name"    validate:"omitempty,max=100"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse is returned by every successful sign-in.
type AuthResponse struct {
	Message string     `json:"message,omitempty"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
