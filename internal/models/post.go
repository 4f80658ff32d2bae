package models

// PostModel is a blog post. Content is stored as markdown; handlers render
// HTML on the way out.
type PostModel struct {
	Base
	Title        string  `json:"title"          gorm:"not null"`
	Content      string  `json:"content"        gorm:"type:longtext"`
	Slug         string  `json:"slug"           gorm:"uniqueIndex;not null"`
	MainImageURL *string `json:"main_image_url"`
	UserID       string  `json:"-"              gorm:"index;not null"`

	User       *UserModel      `json:"user,omitempty"       gorm:"foreignKey:UserID"`
	Categories []CategoryModel `json:"categories,omitempty" gorm:"many2many:post_categories;joinForeignKey:PostID;joinReferences:CategoryID"`
}

func (PostModel) TableName() string { return "posts" }
