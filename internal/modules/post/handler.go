package post

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/parathan/blog-core/internal/config"
	"github.com/parathan/blog-core/internal/middleware"
	"github.com/parathan/blog-core/internal/models"
	"github.com/parathan/blog-core/internal/pkg/markdown"
	"github.com/parathan/blog-core/internal/pkg/pagination"
	"github.com/parathan/blog-core/internal/pkg/response"
	"github.com/parathan/blog-core/internal/pkg/storage"
)

// postResponse decorates a post with its rendered HTML body.
type postResponse struct {
	*models.PostModel
	ContentHTML string `json:"contentHtml"`
}

func withHTML(p *models.PostModel) postResponse {
	return postResponse{PostModel: p, ContentHTML: markdown.Render(p.Content)}
}

type Handler struct {
	svc     *Service
	store   storage.Provider
	uploads config.UploadConfig
}

func NewHandler(svc *Service, store storage.Provider, uploads config.UploadConfig) *Handler {
	return &Handler{svc: svc, store: store, uploads: uploads}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	posts := rg.Group("/posts")
	posts.GET("", h.list)
	posts.GET("/slug/:slug", h.getBySlug)
	posts.GET("/slug/:slug/related", h.related)
	posts.GET("/:id", h.getByID)

	authed := posts.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.PATCH("/:id", h.update)
	authed.DELETE("/:id", h.delete)
	authed.POST("/upload-photo", h.uploadPhoto)
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Title:          c.Query("title"),
		Category:       c.Query("category"),
		MasterCategory: c.Query("masterCategory"),
		Sort:           c.Query("sort"),
	}
	posts, meta, err := h.svc.List(q, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, meta)
}

func (h *Handler) getByID(c *gin.Context) {
	p, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, withHTML(p))
}

func (h *Handler) getBySlug(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, withHTML(p))
}

func (h *Handler) related(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	posts, err := h.svc.Related(p.ID, 3)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": posts})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, errUnknownCategories) || errors.Is(err, errMixedMasters) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, withHTML(p))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, errUnknownCategories) || errors.Is(err, errMixedMasters) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, withHTML(p))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) uploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	if !h.uploads.FormatAllowed(ext) {
		response.BadRequest(c, "unsupported file format")
		return
	}
	if fileHeader.Size > h.uploads.MaxSizeBytes() {
		response.BadRequest(c, "file too large")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.uploads.MaxSizeBytes()+1))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if int64(len(data)) > h.uploads.MaxSizeBytes() {
		response.BadRequest(c, "file too large")
		return
	}

	obj, err := h.store.Upload(c.Request.Context(), storage.File{
		Name:   fileHeader.Filename,
		Folder: "posts",
		Data:   data,
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, obj)
}
