package portfolio

import (
	"errors"

	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/models"
)

type UpsertAboutDTO struct {
	FullName        *string `json:"fullName"`
	Tagline         *string `json:"tagline"`
	Bio             *string `json:"bio"`
	LongBio         *string `json:"longBio"`
	ProfileImageURL *string `json:"profileImageUrl"`
	ResumeURL       *string `json:"resumeUrl"`
	LinkedinURL     *string `json:"linkedinUrl"`
	GithubURL       *string `json:"githubUrl"`
	TwitterURL      *string `json:"twitterUrl"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Location        *string `json:"location"`
}

// GetAbout returns the single about row, nil when none exists yet.
func (s *Service) GetAbout() (*models.AboutModel, error) {
	var about models.AboutModel
	if err := s.db.First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &about, nil
}

// UpsertAbout creates the about row on first write and patches it afterwards.
func (s *Service) UpsertAbout(dto *UpsertAboutDTO) (*models.AboutModel, error) {
	about, err := s.GetAbout()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	set("full_name", dto.FullName)
	set("tagline", dto.Tagline)
	set("bio", dto.Bio)
	set("long_bio", dto.LongBio)
	set("profile_image_url", dto.ProfileImageURL)
	set("resume_url", dto.ResumeURL)
	set("linkedin_url", dto.LinkedinURL)
	set("github_url", dto.GithubURL)
	set("twitter_url", dto.TwitterURL)
	set("email", dto.Email)
	set("phone", dto.Phone)
	set("location", dto.Location)

	if about == nil {
		about = &models.AboutModel{}
		if err := s.db.Create(about).Error; err != nil {
			return nil, err
		}
	}
	if len(updates) > 0 {
		if err := s.db.Model(about).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetAbout()
}
