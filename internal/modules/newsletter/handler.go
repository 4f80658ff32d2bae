package newsletter

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/parathan/blog-core/internal/pkg/pagination"
	"github.com/parathan/blog-core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/newsletter")
	grp.POST("/subscribe", h.subscribe)
	grp.GET("/verify/:token", h.verify)
	grp.GET("/preferences/:token", h.getPreferences)
	grp.PUT("/preferences/:token", h.updatePreferences)
	grp.DELETE("/unsubscribe/:token", h.unsubscribe)

	authed := grp.Group("", authMW)
	authed.GET("/stats", h.stats)
	authed.GET("/subscribers", h.listSubscribers)
	authed.GET("/subscribers/category/:id", h.listSubscribersByCategory)
}

func (h *Handler) subscribe(c *gin.Context) {
	var dto SubscribeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sub, err := h.svc.Subscribe(&dto)
	if err != nil {
		if errors.Is(err, errUnknownCategories) || errors.Is(err, errNoValidCategories) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message":         "please check your inbox to confirm your subscription",
		"preferenceToken": sub.PreferenceToken,
		"subscriber":      sub,
	})
}

func (h *Handler) verify(c *gin.Context) {
	sub, err := h.svc.Verify(c.Param("token"))
	if err != nil {
		if errors.Is(err, errExpiredToken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if sub == nil {
		response.NotFoundMsg(c, "invalid verification token")
		return
	}
	response.OK(c, gin.H{"message": "subscription confirmed", "subscriber": sub})
}

func (h *Handler) getPreferences(c *gin.Context) {
	sub, err := h.svc.GetPreferences(c.Param("token"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if sub == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, sub)
}

func (h *Handler) updatePreferences(c *gin.Context) {
	var dto UpdatePreferencesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sub, err := h.svc.UpdatePreferences(c.Param("token"), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errInactiveSubscriber),
			errors.Is(err, errUnknownCategories),
			errors.Is(err, errNoValidCategories):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	if sub == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, sub)
}

func (h *Handler) unsubscribe(c *gin.Context) {
	sub, err := h.svc.Unsubscribe(c.Param("token"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if sub == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, gin.H{"message": "you have been unsubscribed"})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.GetStats()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) listSubscribers(c *gin.Context) {
	subs, meta, err := h.svc.ListSubscribers(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, subs, meta)
}

func (h *Handler) listSubscribersByCategory(c *gin.Context) {
	subs, err := h.svc.ListSubscribersByCategory(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": subs})
}
