package portfolio

import "gorm.io/gorm"

// Service backs the portfolio surface: projects, skills, work experience and
// the about page.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}
