package contact

import (
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
	contact := rg.Group("/contact")
	contact.POST("", h.create)

	authed := contact.Group("", authMW)
	authed.GET("", h.list)
	authed.GET("/:id", h.getByID)
	authed.PATCH("/:id/read", h.markRead)
	authed.PATCH("/:id/archive", h.archive)
	authed.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateContactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	msg, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, msg)
}

func (h *Handler) list(c *gin.Context) {
	var archived *bool
	switch c.Query("archived") {
	case "true":
		v := true
		archived = &v
	case "false":
		v := false
		archived = &v
	}

	msgs, meta, err := h.svc.List(archived, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, msgs, meta)
}

func (h *Handler) getByID(c *gin.Context) {
	msg, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if msg == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, msg)
}

func (h *Handler) markRead(c *gin.Context) {
	msg, err := h.svc.MarkRead(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if msg == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, msg)
}

func (h *Handler) archive(c *gin.Context) {
	msg, err := h.svc.Archive(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if msg == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, msg)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
