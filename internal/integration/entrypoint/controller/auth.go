// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/branchledger/backend/internal/application/usecase/auth"
	domainerror "github.com/branchledger/backend/internal/domain/error"
	"github.com/branchledger/backend/internal/integration/entrypoint/dto"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	issueTokenUseCase *auth.IssueTokenUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(issueTokenUseCase *auth.IssueTokenUseCase) *AuthController {
	return &AuthController{
		issueTokenUseCase: issueTokenUseCase,
	}
}

// IssueToken handles POST /auth/token requests.
func (c *AuthController) IssueToken(ctx *gin.Context) {
	var req dto.TokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.issueTokenUseCase.Execute(ctx.Request.Context(), auth.IssueTokenInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid email or password",
				Code:  string(domainerror.ErrCodeInvalidCredentials),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to issue token",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: output.AccessToken,
		ActorID:     output.ActorID.String(),
	})
}
