package auth

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/parathan/blog-core/internal/middleware"
	"github.com/parathan/blog-core/internal/pkg/response"
)

type Handler struct {
	svc *Service
	dev bool
}

func NewHandler(svc *Service, dev bool) *Handler {
	return &Handler{svc: svc, dev: dev}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/auth")
	grp.POST("/login", h.login)
	grp.POST("/register", h.register)
	grp.POST("/logout", h.logout)
	grp.GET("/authstatus", h.authStatus)
	grp.POST("/forgot-password", h.forgotPassword)
	grp.POST("/reset-password", h.resetPassword)

	authed := grp.Group("", authMW)
	authed.GET("/me", h.me)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.svc.Login(&dto)
	if err != nil {
		if errors.Is(err, errUserNotFound) || errors.Is(err, errWrongPassword) {
			response.UnauthorizedMsg(c, "invalid email or password")
			return
		}
		response.InternalError(c, err)
		return
	}

	h.setAuthCookies(c, token)
	response.OK(c, gin.H{"token": token, "user": user})
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, user)
}

func (h *Handler) logout(c *gin.Context) {
	h.clearAuthCookies(c)
	response.OK(c, gin.H{"loggedOut": true})
}

// authStatus lets the frontend poll whether the token cookie is still valid.
func (h *Handler) authStatus(c *gin.Context) {
	response.OK(c, gin.H{"authenticated": middleware.IsAuthenticated(c)})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.GetUser(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, user)
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var dto ForgotPasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.ForgotPassword(dto.Email); err != nil {
		response.InternalError(c, err)
		return
	}
	// same answer whether or not the address exists
	response.OK(c, gin.H{"message": "if the email exists, a reset link has been sent"})
}

func (h *Handler) resetPassword(c *gin.Context) {
	var dto ResetPasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.ResetPassword(&dto); err != nil {
		if errors.Is(err, errBadResetToken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "password updated"})
}
