// Package dto defines data transfer objects for API requests and responses.
package dto

// TokenRequest represents the request body for issuing an access token.
type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents the response for a successful token issue.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ActorID     string `json:"actor_id"`
}
