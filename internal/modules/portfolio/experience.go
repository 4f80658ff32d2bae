package portfolio

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/models"
)

type CreateExperienceDTO struct {
	Company          string             `json:"company" binding:"required"`
	Position         string             `json:"position" binding:"required"`
	Description      string             `json:"description"`
	Responsibilities models.StringArray `json:"responsibilities"`
	Technologies     models.StringArray `json:"technologies"`
	StartDate        time.Time          `json:"startDate" binding:"required"`
	EndDate          *time.Time         `json:"endDate"`
	IsCurrent        bool               `json:"isCurrent"`
	Location         string             `json:"location"`
	CompanyURL       string             `json:"companyUrl"`
	DisplayOrder     *int               `json:"displayOrder"`
}

type UpdateExperienceDTO struct {
	Company          *string             `json:"company"`
	Position         *string             `json:"position"`
	Description      *string             `json:"description"`
	Responsibilities *models.StringArray `json:"responsibilities"`
	Technologies     *models.StringArray `json:"technologies"`
	StartDate        *time.Time          `json:"startDate"`
	EndDate          *time.Time          `json:"endDate"`
	IsCurrent        *bool               `json:"isCurrent"`
	Location         *string             `json:"location"`
	CompanyURL       *string             `json:"companyUrl"`
	DisplayOrder     *int                `json:"displayOrder"`
}

func (s *Service) ListExperience() ([]models.ExperienceModel, error) {
	var items []models.ExperienceModel
	return items, s.db.Order("display_order ASC, start_date DESC").Find(&items).Error
}

func (s *Service) GetExperience(id string) (*models.ExperienceModel, error) {
	var e models.ExperienceModel
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (s *Service) CreateExperience(dto *CreateExperienceDTO) (*models.ExperienceModel, error) {
	e := models.ExperienceModel{
		Company:          dto.Company,
		Position:         dto.Position,
		Description:      dto.Description,
		Responsibilities: dto.Responsibilities,
		Technologies:     dto.Technologies,
		StartDate:        dto.StartDate,
		EndDate:          dto.EndDate,
		IsCurrent:        dto.IsCurrent,
		Location:         dto.Location,
		CompanyURL:       dto.CompanyURL,
		DisplayOrder:     1,
	}
	if dto.DisplayOrder != nil {
		e.DisplayOrder = *dto.DisplayOrder
	}
	// a current position has no end date
	if e.IsCurrent {
		e.EndDate = nil
	}
	return &e, s.db.Create(&e).Error
}

func (s *Service) UpdateExperience(id string, dto *UpdateExperienceDTO) (*models.ExperienceModel, error) {
	e, err := s.GetExperience(id)
	if err != nil || e == nil {
		return e, err
	}

	updates := map[string]interface{}{}
	if dto.Company != nil {
		updates["company"] = *dto.Company
	}
	if dto.Position != nil {
		updates["position"] = *dto.Position
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Responsibilities != nil {
		updates["responsibilities"] = *dto.Responsibilities
	}
	if dto.Technologies != nil {
		updates["technologies"] = *dto.Technologies
	}
	if dto.StartDate != nil {
		updates["start_date"] = *dto.StartDate
	}
	if dto.EndDate != nil {
		updates["end_date"] = *dto.EndDate
	}
	if dto.IsCurrent != nil {
		updates["is_current"] = *dto.IsCurrent
		if *dto.IsCurrent {
			updates["end_date"] = nil
		}
	}
	if dto.Location != nil {
		updates["location"] = *dto.Location
	}
	if dto.CompanyURL != nil {
		updates["company_url"] = *dto.CompanyURL
	}
	if dto.DisplayOrder != nil {
		updates["display_order"] = *dto.DisplayOrder
	}
	return e, s.db.Model(e).Updates(updates).Error
}

func (s *Service) DeleteExperience(id string) error {
	return s.db.Delete(&models.ExperienceModel{}, "id = ?", id).Error
}
