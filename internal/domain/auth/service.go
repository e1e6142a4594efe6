package auth

import "context"

// Service defines editor authentication.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
