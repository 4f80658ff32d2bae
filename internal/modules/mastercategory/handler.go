package mastercategory

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/parathan/blog-core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	mcs := rg.Group("/master-categories")
	mcs.GET("", h.list)
	mcs.GET("/:query", h.getByQuery)

	authed := mcs.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:query", h.update)
	authed.PATCH("/:query", h.update)
	authed.DELETE("/:query", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	activeOnly := c.Query("all") == ""
	mcs, err := h.svc.List(activeOnly)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": mcs})
}

func (h *Handler) getByQuery(c *gin.Context) {
	mc, err := h.svc.GetByQuery(c.Param("query"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mc == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, mc)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateMasterCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	mc, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, errConflict) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, mc)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateMasterCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	mc, err := h.svc.Update(c.Param("query"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mc == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, mc)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("query")); err != nil {
		if errors.Is(err, errReferenced) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
