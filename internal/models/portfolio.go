package models

import "time"

// ProjectModel is a portfolio project entry.
type ProjectModel struct {
	Base
	Title           string      `json:"title"            gorm:"not null"`
	Description     string      `json:"description"      gorm:"type:text"`
	LongDescription string      `json:"long_description" gorm:"type:longtext"`
	Technologies    StringArray `json:"technologies"     gorm:"type:json"`
	ProjectURL      string      `json:"project_url"`
	GithubURL       string      `json:"github_url"`
	ImageURL        string      `json:"image_url"`
	GalleryImages   StringArray `json:"gallery_images"   gorm:"type:json"`
	StartDate       time.Time   `json:"start_date"`
	EndDate         *time.Time  `json:"end_date"`
	Featured        bool        `json:"featured"         gorm:"default:true"`
	DisplayOrder    int         `json:"display_order"    gorm:"default:1"`
}

func (ProjectModel) TableName() string { return "projects" }

// SkillModel is a single skill with a proficiency level.
type SkillModel struct {
	Base
	Name             string `json:"name"              gorm:"not null"`
	Category         string `json:"category"          gorm:"index;not null"`
	ProficiencyLevel int    `json:"proficiency_level" gorm:"default:50"`
	IconURL          string `json:"icon_url"`
	DisplayOrder     int    `json:"display_order"     gorm:"default:1"`
	IsVisible        bool   `json:"is_visible"        gorm:"default:true"`
}

func (SkillModel) TableName() string { return "skills" }

// ExperienceModel is a work-history entry.
type ExperienceModel struct {
	Base
	Company          string      `json:"company"          gorm:"not null"`
	Position         string      `json:"position"         gorm:"not null"`
	Description      string      `json:"description"      gorm:"type:text"`
	Responsibilities StringArray `json:"responsibilities" gorm:"type:json"`
	Technologies     StringArray `json:"technologies"     gorm:"type:json"`
	StartDate        time.Time   `json:"start_date"`
	EndDate          *time.Time  `json:"end_date"`
	IsCurrent        bool        `json:"is_current"       gorm:"default:false"`
	Location         string      `json:"location"`
	CompanyURL       string      `json:"company_url"`
	DisplayOrder     int         `json:"display_order"    gorm:"default:1"`
}

func (ExperienceModel) TableName() string { return "experiences" }

// AboutModel is a singleton bio row; the service upserts a single record.
type AboutModel struct {
	Base
	FullName        string `json:"full_name"`
	Tagline         string `json:"tagline"`
	Bio             string `json:"bio"       gorm:"type:text"`
	LongBio         string `json:"long_bio"  gorm:"type:longtext"`
	ProfileImageURL string `json:"profile_image_url"`
	ResumeURL       string `json:"resume_url"`
	LinkedinURL     string `json:"linkedin_url"`
	GithubURL       string `json:"github_url"`
	TwitterURL      string `json:"twitter_url"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
}

func (AboutModel) TableName() string { return "about" }
