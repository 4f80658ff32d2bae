package post

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/models"
	"github.com/parathan/blog-core/internal/pkg/pagination"
	"github.com/parathan/blog-core/internal/pkg/response"
)

type CreatePostDTO struct {
	Title        string   `json:"title" binding:"required"`
	Content      string   `json:"content" binding:"required"`
	CategoryIDs  []string `json:"categoryIds" binding:"required,min=1"`
	MainImageURL *string  `json:"mainImageUrl"`
}

type UpdatePostDTO struct {
	Title        *string   `json:"title"`
	Content      *string   `json:"content"`
	CategoryIDs  *[]string `json:"categoryIds"`
	MainImageURL *string   `json:"mainImageUrl"`
}

// ListQuery are the supported post filters.
type ListQuery struct {
	Title          string
	Category       string
	MasterCategory string
	// Sort orders by title when "asc" or "desc"; otherwise newest first.
	Sort string
}

var (
	errUnknownCategories = errors.New("some categories do not exist")
	errMixedMasters      = errors.New("categories must belong to a single master category")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// resolveCategories loads the referenced categories and enforces that they
// all hang off the same master category.
func (s *Service) resolveCategories(ids []string) ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	if err := s.db.Where("id IN ?", ids).Find(&cats).Error; err != nil {
		return nil, err
	}
	if len(cats) != len(ids) {
		return nil, errUnknownCategories
	}

	var master string
	for _, cat := range cats {
		if cat.MasterCategoryID == nil {
			continue
		}
		if master == "" {
			master = *cat.MasterCategoryID
		} else if master != *cat.MasterCategoryID {
			return nil, errMixedMasters
		}
	}
	return cats, nil
}

func (s *Service) Create(userID string, dto *CreatePostDTO) (*models.PostModel, error) {
	cats, err := s.resolveCategories(dto.CategoryIDs)
	if err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(s.db, dto.Title, "")
	if err != nil {
		return nil, err
	}

	p := models.PostModel{
		Title:        dto.Title,
		Content:      dto.Content,
		Slug:         slug,
		MainImageURL: dto.MainImageURL,
		UserID:       userID,
		Categories:   cats,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return s.GetByID(p.ID)
}

func (s *Service) Update(id string, dto *UpdatePostDTO) (*models.PostModel, error) {
	existing, err := s.GetByID(id)
	if err != nil || existing == nil {
		return existing, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil && *dto.Title != existing.Title {
		slug, err := uniqueSlug(s.db, *dto.Title, id)
		if err != nil {
			return nil, err
		}
		updates["title"] = *dto.Title
		updates["slug"] = slug
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.MainImageURL != nil {
		updates["main_image_url"] = *dto.MainImageURL
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(existing).Updates(updates).Error; err != nil {
				return err
			}
		}
		if dto.CategoryIDs != nil {
			cats, err := s.resolveCategories(*dto.CategoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(existing).Association("Categories").Replace(cats); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *Service) GetByID(id string) (*models.PostModel, error) {
	var p models.PostModel
	err := s.db.Preload("Categories").Preload("User").First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetBySlug(slug string) (*models.PostModel, error) {
	var p models.PostModel
	err := s.db.Preload("Categories").Preload("User").Where("slug = ?", slug).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) List(q ListQuery, page pagination.Query) ([]models.PostModel, response.Pagination, error) {
	base := s.db.Model(&models.PostModel{})

	if q.Title != "" {
		base = base.Where("posts.title LIKE ?", "%"+q.Title+"%")
	}
	if q.Category != "" || q.MasterCategory != "" {
		// category filters go through a subquery so the outer count stays
		// free of join duplicates
		sub := s.db.Table("post_categories pc").
			Select("pc.post_id").
			Joins("JOIN categories c ON c.id = pc.category_id")
		if q.Category != "" {
			sub = sub.Where("c.title = ?", q.Category)
		}
		if q.MasterCategory != "" {
			sub = sub.
				Joins("JOIN master_categories mc ON mc.id = c.master_category_id").
				Where("mc.slug = ?", q.MasterCategory)
		}
		base = base.Where("posts.id IN (?)", sub)
	}

	switch strings.ToLower(q.Sort) {
	case "asc":
		base = base.Order("posts.title ASC")
	case "desc":
		base = base.Order("posts.title DESC")
	default:
		base = base.Order("posts.created_at DESC")
	}

	var posts []models.PostModel
	meta, err := pagination.Paginate(base.Preload("Categories").Preload("User"), page, &posts)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return posts, meta, nil
}

// Related returns up to limit other posts sharing a category with the given
// post, padding with the most recent posts when too few share one.
func (s *Service) Related(id string, limit int) ([]models.PostModel, error) {
	if limit <= 0 {
		limit = 3
	}

	var catIDs []string
	err := s.db.Table("post_categories").Where("post_id = ?", id).Pluck("category_id", &catIDs).Error
	if err != nil {
		return nil, err
	}

	var posts []models.PostModel
	if len(catIDs) > 0 {
		err = s.db.Model(&models.PostModel{}).
			Distinct("posts.*").
			Joins("JOIN post_categories pc ON pc.post_id = posts.id").
			Where("pc.category_id IN ? AND posts.id <> ?", catIDs, id).
			Order("posts.created_at DESC").
			Limit(limit).
			Preload("Categories").
			Find(&posts).Error
		if err != nil {
			return nil, err
		}
	}

	if len(posts) < limit {
		exclude := make([]string, 0, len(posts)+1)
		exclude = append(exclude, id)
		for _, p := range posts {
			exclude = append(exclude, p.ID)
		}
		var fill []models.PostModel
		err = s.db.Model(&models.PostModel{}).
			Where("id NOT IN ?", exclude).
			Order("created_at DESC").
			Limit(limit - len(posts)).
			Preload("Categories").
			Find(&fill).Error
		if err != nil {
			return nil, err
		}
		posts = append(posts, fill...)
	}
	return posts, nil
}

func (s *Service) Delete(id string) error {
	p, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("post not found")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(p).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.PostModel{}, "id = ?", id).Error
	})
}
