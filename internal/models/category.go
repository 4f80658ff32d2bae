package models

// MasterCategoryModel is a top-level content grouping. Categories and
// newsletter topic preferences both hang off it.
type MasterCategoryModel struct {
	Base
	Name         string `json:"name"          gorm:"uniqueIndex;not null"`
	Slug         string `json:"slug"          gorm:"uniqueIndex;not null"`
	Description  string `json:"description"`
	IsActive     bool   `json:"is_active"     gorm:"default:true"`
	DisplayOrder int    `json:"display_order" gorm:"default:1"`

	Categories []CategoryModel `json:"categories,omitempty" gorm:"foreignKey:MasterCategoryID"`
}

func (MasterCategoryModel) TableName() string { return "master_categories" }

// CategoryModel is a second-level grouping under a master category.
type CategoryModel struct {
	Base
	Title            string               `json:"title"       gorm:"not null"`
	Description      string               `json:"description"`
	MasterCategoryID *string              `json:"master_category_id" gorm:"index"`
	MasterCategory   *MasterCategoryModel `json:"master_category,omitempty" gorm:"foreignKey:MasterCategoryID"`

	Posts []PostModel `json:"posts,omitempty" gorm:"many2many:post_categories;joinForeignKey:CategoryID;joinReferences:PostID"`
}

func (CategoryModel) TableName() string { return "categories" }
