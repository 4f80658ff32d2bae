package category

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/models"
)

type CreateCategoryDTO struct {
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description"`
	MasterCategoryID *string `json:"masterCategoryId"`
}

type UpdateCategoryDTO struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	MasterCategoryID *string `json:"masterCategoryId"`
}

var (
	errConflict        = fmt.Errorf("title already exists")
	errUnknownMaster   = fmt.Errorf("master category does not exist")
	errPostsReferenced = fmt.Errorf("category is still attached to posts")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List() ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	return cats, s.db.Order("created_at ASC").Find(&cats).Error
}

func (s *Service) GetByID(id string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// GetByQuery looks the category up by id first, then by title.
func (s *Service) GetByQuery(query string) (*models.CategoryModel, error) {
	if cat, err := s.GetByID(query); err != nil {
		return nil, err
	} else if cat != nil {
		return cat, nil
	}

	var cat models.CategoryModel
	if err := s.db.Where("title = ?", query).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) masterExists(id string) (bool, error) {
	var count int64
	err := s.db.Model(&models.MasterCategoryModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *Service) Create(dto *CreateCategoryDTO) (*models.CategoryModel, error) {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("title = ?", dto.Title).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errConflict
	}

	if dto.MasterCategoryID != nil {
		exists, err := s.masterExists(*dto.MasterCategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errUnknownMaster
		}
	}

	cat := models.CategoryModel{
		Title:            dto.Title,
		Description:      dto.Description,
		MasterCategoryID: dto.MasterCategoryID,
	}
	return &cat, s.db.Create(&cat).Error
}

func (s *Service) Update(id string, dto *UpdateCategoryDTO) (*models.CategoryModel, error) {
	cat, err := s.GetByID(id)
	if err != nil || cat == nil {
		return cat, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.MasterCategoryID != nil {
		if *dto.MasterCategoryID == "" {
			updates["master_category_id"] = nil
		} else {
			exists, err := s.masterExists(*dto.MasterCategoryID)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, errUnknownMaster
			}
			updates["master_category_id"] = *dto.MasterCategoryID
		}
	}
	return cat, s.db.Model(cat).Updates(updates).Error
}

// Delete refuses to remove a category that is still attached to posts.
func (s *Service) Delete(id string) error {
	var count int64
	if err := s.db.Table("post_categories").Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errPostsReferenced
	}
	return s.db.Delete(&models.CategoryModel{}, "id = ?", id).Error
}
