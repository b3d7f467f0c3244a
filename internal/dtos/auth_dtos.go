package dtos

type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignInResponse struct {
	Token string `json:"token"`
}

// SignOutRequest carries the token to revoke. The field is optional:
// sign-out with a blank token is a no-op, never an error.
type SignOutRequest struct {
	Token string `json:"token"`
}
