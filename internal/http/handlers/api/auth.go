package api

import (
	"github.com/land-deals/backend/internal/http/handlers/shared"
	"github.com/land-deals/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.BindError(c, err)
		return
	}

	result, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user": gin.H{
			"id":        result.User.ID,
			"username":  result.User.Username,
			"full_name": result.User.FullName,
			"role":      result.User.Role,
		},
	})
}

// Profile handles GET /api/v1/auth/me.
func (h *Handler) Profile(c *gin.Context) {
	actorID, _ := shared.ActorFrom(c)
	user, err := h.AuthService.Profile(actorID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword handles PUT /api/v1/auth/password.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.BindError(c, err)
		return
	}
	actorID, _ := shared.ActorFrom(c)
	if err := h.AuthService.ChangePassword(actorID, req.OldPassword, req.NewPassword); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, nil)
}
