package portfolio

import (
	"errors"

	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/models"
)

type CreateSkillDTO struct {
	Name             string `json:"name" binding:"required"`
	Category         string `json:"category" binding:"required"`
	ProficiencyLevel *int   `json:"proficiencyLevel"`
	IconURL          string `json:"iconUrl"`
	DisplayOrder     *int   `json:"displayOrder"`
	IsVisible        *bool  `json:"isVisible"`
}

type UpdateSkillDTO struct {
	Name             *string `json:"name"`
	Category         *string `json:"category"`
	ProficiencyLevel *int    `json:"proficiencyLevel"`
	IconURL          *string `json:"iconUrl"`
	DisplayOrder     *int    `json:"displayOrder"`
	IsVisible        *bool   `json:"isVisible"`
}

// ListSkills returns visible skills for the public site; includeHidden is for
// the admin view.
func (s *Service) ListSkills(includeHidden bool) ([]models.SkillModel, error) {
	var skills []models.SkillModel
	q := s.db.Order("category ASC, display_order ASC, name ASC")
	if !includeHidden {
		q = q.Where("is_visible = ?", true)
	}
	return skills, q.Find(&skills).Error
}

func (s *Service) SkillsByCategory(category string) ([]models.SkillModel, error) {
	var skills []models.SkillModel
	return skills, s.db.Where("category = ? AND is_visible = ?", category, true).
		Order("display_order ASC, name ASC").Find(&skills).Error
}

func (s *Service) GetSkill(id string) (*models.SkillModel, error) {
	var sk models.SkillModel
	if err := s.db.First(&sk, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sk, nil
}

func (s *Service) CreateSkill(dto *CreateSkillDTO) (*models.SkillModel, error) {
	sk := models.SkillModel{
		Name:             dto.Name,
		Category:         dto.Category,
		ProficiencyLevel: 50,
		IconURL:          dto.IconURL,
		DisplayOrder:     1,
		IsVisible:        true,
	}
	if dto.ProficiencyLevel != nil {
		sk.ProficiencyLevel = *dto.ProficiencyLevel
	}
	if dto.DisplayOrder != nil {
		sk.DisplayOrder = *dto.DisplayOrder
	}
	if dto.IsVisible != nil {
		sk.IsVisible = *dto.IsVisible
	}
	return &sk, s.db.Create(&sk).Error
}

func (s *Service) UpdateSkill(id string, dto *UpdateSkillDTO) (*models.SkillModel, error) {
	sk, err := s.GetSkill(id)
	if err != nil || sk == nil {
		return sk, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.ProficiencyLevel != nil {
		updates["proficiency_level"] = *dto.ProficiencyLevel
	}
	if dto.IconURL != nil {
		updates["icon_url"] = *dto.IconURL
	}
	if dto.DisplayOrder != nil {
		updates["display_order"] = *dto.DisplayOrder
	}
	if dto.IsVisible != nil {
		updates["is_visible"] = *dto.IsVisible
	}
	return sk, s.db.Model(sk).Updates(updates).Error
}

func (s *Service) DeleteSkill(id string) error {
	return s.db.Delete(&models.SkillModel{}, "id = ?", id).Error
}
