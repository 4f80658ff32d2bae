package models

// ContactMessageModel stores contact-form submissions.
type ContactMessageModel struct {
	Base
	Name       string `json:"name"        gorm:"not null"`
	Email      string `json:"email"       gorm:"not null"`
	Subject    string `json:"subject"`
	Message    string `json:"message"     gorm:"type:text;not null"`
	IsRead     bool   `json:"is_read"     gorm:"default:false"`
	IsArchived bool   `json:"is_archived" gorm:"default:false"`
}

func (ContactMessageModel) TableName() string { return "contact_messages" }
