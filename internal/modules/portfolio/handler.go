package portfolio

import (
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
	projects := rg.Group("/projects")
	projects.GET("", h.listProjects)
	projects.GET("/featured", h.featuredProjects)
	projects.GET("/:id", h.getProject)
	projectsAuthed := projects.Group("", authMW)
	projectsAuthed.POST("", h.createProject)
	projectsAuthed.PUT("/:id", h.updateProject)
	projectsAuthed.PATCH("/:id", h.updateProject)
	projectsAuthed.DELETE("/:id", h.deleteProject)

	skills := rg.Group("/skills")
	skills.GET("", h.listSkills)
	skills.GET("/category/:category", h.skillsByCategory)
	skillsAuthed := skills.Group("", authMW)
	skillsAuthed.GET("/admin", h.listSkillsAdmin)
	skillsAuthed.POST("", h.createSkill)
	skillsAuthed.PUT("/:id", h.updateSkill)
	skillsAuthed.PATCH("/:id", h.updateSkill)
	skillsAuthed.DELETE("/:id", h.deleteSkill)

	experience := rg.Group("/experience")
	experience.GET("", h.listExperience)
	experience.GET("/:id", h.getExperience)
	experienceAuthed := experience.Group("", authMW)
	experienceAuthed.POST("", h.createExperience)
	experienceAuthed.PUT("/:id", h.updateExperience)
	experienceAuthed.PATCH("/:id", h.updateExperience)
	experienceAuthed.DELETE("/:id", h.deleteExperience)

	about := rg.Group("/about")
	about.GET("", h.getAbout)
	about.Group("", authMW).PUT("", h.upsertAbout)
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.svc.ListProjects()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": projects})
}

func (h *Handler) featuredProjects(c *gin.Context) {
	projects, err := h.svc.FeaturedProjects()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": projects})
}

func (h *Handler) getProject(c *gin.Context) {
	p, err := h.svc.GetProject(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, p)
}

func (h *Handler) createProject(c *gin.Context) {
	var dto CreateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.CreateProject(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) updateProject(c *gin.Context) {
	var dto UpdateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.UpdateProject(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, p)
}

func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.svc.DeleteProject(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listSkills(c *gin.Context) {
	skills, err := h.svc.ListSkills(false)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": skills})
}

func (h *Handler) listSkillsAdmin(c *gin.Context) {
	skills, err := h.svc.ListSkills(true)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": skills})
}

func (h *Handler) skillsByCategory(c *gin.Context) {
	skills, err := h.svc.SkillsByCategory(c.Param("category"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": skills})
}

func (h *Handler) createSkill(c *gin.Context) {
	var dto CreateSkillDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sk, err := h.svc.CreateSkill(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, sk)
}

func (h *Handler) updateSkill(c *gin.Context) {
	var dto UpdateSkillDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sk, err := h.svc.UpdateSkill(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if sk == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, sk)
}

func (h *Handler) deleteSkill(c *gin.Context) {
	if err := h.svc.DeleteSkill(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listExperience(c *gin.Context) {
	items, err := h.svc.ListExperience()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": items})
}

func (h *Handler) getExperience(c *gin.Context) {
	e, err := h.svc.GetExperience(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if e == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, e)
}

func (h *Handler) createExperience(c *gin.Context) {
	var dto CreateExperienceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	e, err := h.svc.CreateExperience(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, e)
}

func (h *Handler) updateExperience(c *gin.Context) {
	var dto UpdateExperienceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	e, err := h.svc.UpdateExperience(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if e == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, e)
}

func (h *Handler) deleteExperience(c *gin.Context) {
	if err := h.svc.DeleteExperience(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) getAbout(c *gin.Context) {
	about, err := h.svc.GetAbout()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if about == nil {
		response.NotFoundMsg(c, "about page not configured yet")
		return
	}
	response.OK(c, about)
}

func (h *Handler) upsertAbout(c *gin.Context) {
	var dto UpsertAboutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	about, err := h.svc.UpsertAbout(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, about)
}
