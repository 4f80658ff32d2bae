package mastercategory

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/models"
)

type CreateMasterCategoryDTO struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	Description  string `json:"description"`
	IsActive     *bool  `json:"isActive"`
	DisplayOrder *int   `json:"displayOrder"`
}

type UpdateMasterCategoryDTO struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"isActive"`
	DisplayOrder *int    `json:"displayOrder"`
}

var (
	errConflict   = fmt.Errorf("name or slug already exists")
	errReferenced = fmt.Errorf("master category still has categories attached")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(activeOnly bool) ([]models.MasterCategoryModel, error) {
	var mcs []models.MasterCategoryModel
	q := s.db.Order("display_order ASC, created_at ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	return mcs, q.Find(&mcs).Error
}

func (s *Service) GetByID(id string) (*models.MasterCategoryModel, error) {
	var mc models.MasterCategoryModel
	if err := s.db.Preload("Categories").First(&mc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mc, nil
}

// GetByQuery looks the master category up by id first, then by slug.
func (s *Service) GetByQuery(query string) (*models.MasterCategoryModel, error) {
	if mc, err := s.GetByID(query); err != nil {
		return nil, err
	} else if mc != nil {
		return mc, nil
	}

	var mc models.MasterCategoryModel
	if err := s.db.Preload("Categories").Where("slug = ?", query).First(&mc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mc, nil
}

func (s *Service) Create(dto *CreateMasterCategoryDTO) (*models.MasterCategoryModel, error) {
	var count int64
	if err := s.db.Model(&models.MasterCategoryModel{}).Where("slug = ? OR name = ?", dto.Slug, dto.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errConflict
	}

	mc := models.MasterCategoryModel{
		Name:        dto.Name,
		Slug:        dto.Slug,
		Description: dto.Description,
	}
	if dto.IsActive != nil {
		mc.IsActive = *dto.IsActive
	} else {
		mc.IsActive = true
	}
	if dto.DisplayOrder != nil {
		mc.DisplayOrder = *dto.DisplayOrder
	} else {
		mc.DisplayOrder = 1
	}
	return &mc, s.db.Create(&mc).Error
}

func (s *Service) Update(id string, dto *UpdateMasterCategoryDTO) (*models.MasterCategoryModel, error) {
	mc, err := s.GetByID(id)
	if err != nil || mc == nil {
		return mc, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Slug != nil {
		updates["slug"] = *dto.Slug
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.DisplayOrder != nil {
		updates["display_order"] = *dto.DisplayOrder
	}
	return mc, s.db.Model(mc).Updates(updates).Error
}

// Delete refuses to remove a master category that still has categories.
func (s *Service) Delete(id string) error {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("master_category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errReferenced
	}
	return s.db.Delete(&models.MasterCategoryModel{}, "id = ?", id).Error
}
