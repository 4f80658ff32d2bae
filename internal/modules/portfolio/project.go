package portfolio

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/models"
)

type CreateProjectDTO struct {
	Title           string             `json:"title" binding:"required"`
	Description     string             `json:"description" binding:"required"`
	LongDescription string             `json:"longDescription"`
	Technologies    models.StringArray `json:"technologies"`
	ProjectURL      string             `json:"projectUrl"`
	GithubURL       string             `json:"githubUrl"`
	ImageURL        string             `json:"imageUrl"`
	GalleryImages   models.StringArray `json:"galleryImages"`
	StartDate       *time.Time         `json:"startDate"`
	EndDate         *time.Time         `json:"endDate"`
	Featured        *bool              `json:"featured"`
	DisplayOrder    *int               `json:"displayOrder"`
}

type UpdateProjectDTO struct {
	Title           *string             `json:"title"`
	Description     *string             `json:"description"`
	LongDescription *string             `json:"longDescription"`
	Technologies    *models.StringArray `json:"technologies"`
	ProjectURL      *string             `json:"projectUrl"`
	GithubURL       *string             `json:"githubUrl"`
	ImageURL        *string             `json:"imageUrl"`
	GalleryImages   *models.StringArray `json:"galleryImages"`
	StartDate       *time.Time          `json:"startDate"`
	EndDate         *time.Time          `json:"endDate"`
	Featured        *bool               `json:"featured"`
	DisplayOrder    *int                `json:"displayOrder"`
}

func (s *Service) ListProjects() ([]models.ProjectModel, error) {
	var projects []models.ProjectModel
	return projects, s.db.Order("display_order ASC, created_at DESC").Find(&projects).Error
}

func (s *Service) FeaturedProjects() ([]models.ProjectModel, error) {
	var projects []models.ProjectModel
	return projects, s.db.Where("featured = ?", true).
		Order("display_order ASC, created_at DESC").Find(&projects).Error
}

func (s *Service) GetProject(id string) (*models.ProjectModel, error) {
	var p models.ProjectModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) CreateProject(dto *CreateProjectDTO) (*models.ProjectModel, error) {
	p := models.ProjectModel{
		Title:           dto.Title,
		Description:     dto.Description,
		LongDescription: dto.LongDescription,
		Technologies:    dto.Technologies,
		ProjectURL:      dto.ProjectURL,
		GithubURL:       dto.GithubURL,
		ImageURL:        dto.ImageURL,
		GalleryImages:   dto.GalleryImages,
		EndDate:         dto.EndDate,
		Featured:        true,
		DisplayOrder:    1,
	}
	if dto.StartDate != nil {
		p.StartDate = *dto.StartDate
	}
	if dto.Featured != nil {
		p.Featured = *dto.Featured
	}
	if dto.DisplayOrder != nil {
		p.DisplayOrder = *dto.DisplayOrder
	}
	return &p, s.db.Create(&p).Error
}

func (s *Service) UpdateProject(id string, dto *UpdateProjectDTO) (*models.ProjectModel, error) {
	p, err := s.GetProject(id)
	if err != nil || p == nil {
		return p, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.LongDescription != nil {
		updates["long_description"] = *dto.LongDescription
	}
	if dto.Technologies != nil {
		updates["technologies"] = *dto.Technologies
	}
	if dto.ProjectURL != nil {
		updates["project_url"] = *dto.ProjectURL
	}
	if dto.GithubURL != nil {
		updates["github_url"] = *dto.GithubURL
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.GalleryImages != nil {
		updates["gallery_images"] = *dto.GalleryImages
	}
	if dto.StartDate != nil {
		updates["start_date"] = *dto.StartDate
	}
	if dto.EndDate != nil {
		updates["end_date"] = *dto.EndDate
	}
	if dto.Featured != nil {
		updates["featured"] = *dto.Featured
	}
	if dto.DisplayOrder != nil {
		updates["display_order"] = *dto.DisplayOrder
	}
	return p, s.db.Model(p).Updates(updates).Error
}

func (s *Service) DeleteProject(id string) error {
	return s.db.Delete(&models.ProjectModel{}, "id = ?", id).Error
}
