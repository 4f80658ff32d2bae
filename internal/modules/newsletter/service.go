package newsletter

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/models"
	"github.com/parathan/blog-core/internal/pkg/mail"
	"github.com/parathan/blog-core/internal/pkg/pagination"
	"github.com/parathan/blog-core/internal/pkg/response"
)

type SubscribeDTO struct {
	Email       string   `json:"email" binding:"required,email"`
	CategoryIDs []string `json:"categoryIds" binding:"required,min=1"`
}

type UpdatePreferencesDTO struct {
	CategoryIDs []string `json:"categoryIds" binding:"required,min=1"`
}

// Stats summarize the subscriber base for the admin dashboard.
type Stats struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	Unsubscribed int64 `json:"unsubscribed"`
	Unverified   int64 `json:"unverified"`
}

var (
	errUnknownCategories  = errors.New("some categories do not exist")
	errNoValidCategories  = errors.New("no valid categories found")
	errExpiredToken       = errors.New("verification link expired, please subscribe again")
	errInactiveSubscriber = errors.New("subscription is not active")
)

type Service struct {
	db     *gorm.DB
	mailer *mail.Sender
	log    *zap.Logger
	appURL string
	webURL string
}

func NewService(db *gorm.DB, mailer *mail.Sender, log *zap.Logger, appURL, webURL string) *Service {
	return &Service{db: db, mailer: mailer, log: log, appURL: appURL, webURL: webURL}
}

// resolveCategories loads the requested master categories and insists every
// id resolves.
func (s *Service) resolveCategories(ids []string) ([]models.MasterCategoryModel, error) {
	if len(ids) == 0 {
		return nil, errNoValidCategories
	}
	var cats []models.MasterCategoryModel
	if err := s.db.Where("id IN ?", ids).Find(&cats).Error; err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, errNoValidCategories
	}
	if len(cats) != len(ids) {
		return nil, errUnknownCategories
	}
	return cats, nil
}

// Subscribe starts or restarts the double-opt-in flow. Re-subscribing an
// existing address replaces its category set, issues a fresh verification
// token and drops verified status until the link is clicked again; the
// preference token is never re-issued.
func (s *Service) Subscribe(dto *SubscribeDTO) (*models.NewsletterSubscriberModel, error) {
	cats, err := s.resolveCategories(dto.CategoryIDs)
	if err != nil {
		return nil, err
	}

	verification, err := newToken()
	if err != nil {
		return nil, err
	}

	var sub models.NewsletterSubscriberModel
	err = s.db.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("email = ?", dto.Email).First(&sub).Error
		switch {
		case findErr == nil:
			beginVerification(&sub, verification, time.Now())
			if err := tx.Model(&sub).Updates(map[string]interface{}{
				"verification_token":      sub.VerificationToken,
				"verification_expires_at": sub.VerificationExpiresAt,
				"is_verified":             false,
				"unsubscribed_at":         nil,
			}).Error; err != nil {
				return err
			}
			return tx.Model(&sub).Association("Categories").Replace(cats)

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			preference, err := newToken()
			if err != nil {
				return err
			}
			sub = models.NewsletterSubscriberModel{
				Email:           dto.Email,
				PreferenceToken: preference,
				Categories:      cats,
			}
			beginVerification(&sub, verification, time.Now())
			return tx.Create(&sub).Error

		default:
			return findErr
		}
	})
	if err != nil {
		return nil, err
	}

	verifyURL := fmt.Sprintf("%s/api/newsletter/verify/%s", s.appURL, verification)
	if err := s.mailer.SendSubscribeVerify(sub.Email, mail.VerifyData{VerifyURL: verifyURL}); err != nil {
		s.log.Warn("verification mail failed", zap.String("email", sub.Email), zap.Error(err))
	}

	return s.getByPreferenceToken(sub.PreferenceToken)
}

// Verify consumes a verification token.
func (s *Service) Verify(token string) (*models.NewsletterSubscriberModel, error) {
	var sub models.NewsletterSubscriberModel
	err := s.db.Preload("Categories").Where("verification_token = ?", token).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// the token on an already verified subscriber was cleared,
			// so a second click lands here
			return nil, nil
		}
		return nil, err
	}

	switch applyVerify(&sub, time.Now()) {
	case verifyAlreadyDone:
		return &sub, nil
	case verifyExpired:
		return nil, errExpiredToken
	}

	err = s.db.Model(&sub).Updates(map[string]interface{}{
		"is_verified":             true,
		"verification_token":      nil,
		"verification_expires_at": nil,
	}).Error
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(sub.Categories))
	for _, cat := range sub.Categories {
		names = append(names, cat.Name)
	}
	if err := s.mailer.SendWelcome(sub.Email, mail.WelcomeData{
		Categories:     names,
		PreferencesURL: s.preferencesURL(sub.PreferenceToken),
	}); err != nil {
		s.log.Warn("welcome mail failed", zap.String("email", sub.Email), zap.Error(err))
	}
	return &sub, nil
}

func (s *Service) preferencesURL(token string) string {
	return fmt.Sprintf("%s/newsletter/preferences/%s", s.webURL, token)
}

func (s *Service) getByPreferenceToken(token string) (*models.NewsletterSubscriberModel, error) {
	var sub models.NewsletterSubscriberModel
	err := s.db.Preload("Categories").Where("preference_token = ?", token).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// GetPreferences returns the subscriber behind a preference token.
func (s *Service) GetPreferences(token string) (*models.NewsletterSubscriberModel, error) {
	return s.getByPreferenceToken(token)
}

// UpdatePreferences replaces the category set of an active subscriber.
func (s *Service) UpdatePreferences(token string, dto *UpdatePreferencesDTO) (*models.NewsletterSubscriberModel, error) {
	sub, err := s.getByPreferenceToken(token)
	if err != nil || sub == nil {
		return sub, err
	}
	if !sub.IsActive() {
		return nil, errInactiveSubscriber
	}

	cats, err := s.resolveCategories(dto.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(sub).Association("Categories").Replace(cats); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cats))
	for _, cat := range cats {
		names = append(names, cat.Name)
	}
	if err := s.mailer.SendPreferencesUpdated(sub.Email, mail.PreferencesData{
		Categories:     names,
		PreferencesURL: s.preferencesURL(sub.PreferenceToken),
	}); err != nil {
		s.log.Warn("preferences mail failed", zap.String("email", sub.Email), zap.Error(err))
	}

	return s.getByPreferenceToken(token)
}

// Unsubscribe opts the subscriber out. Repeats are idempotent.
func (s *Service) Unsubscribe(token string) (*models.NewsletterSubscriberModel, error) {
	sub, err := s.getByPreferenceToken(token)
	if err != nil || sub == nil {
		return sub, err
	}

	applyUnsubscribe(sub, time.Now())
	if err := s.db.Model(sub).Update("unsubscribed_at", sub.UnsubscribedAt).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) GetStats() (*Stats, error) {
	var stats Stats
	base := s.db.Model(&models.NewsletterSubscriberModel{})

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("is_verified = ? AND unsubscribed_at IS NULL", true).
		Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("unsubscribed_at IS NOT NULL").
		Count(&stats.Unsubscribed).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("is_verified = ? AND unsubscribed_at IS NULL", false).
		Count(&stats.Unverified).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListSubscribers pages through active subscribers.
func (s *Service) ListSubscribers(page pagination.Query) ([]models.NewsletterSubscriberModel, response.Pagination, error) {
	q := s.db.Model(&models.NewsletterSubscriberModel{}).
		Where("is_verified = ? AND unsubscribed_at IS NULL", true).
		Order("created_at DESC").
		Preload("Categories")

	var subs []models.NewsletterSubscriberModel
	meta, err := pagination.Paginate(q, page, &subs)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return subs, meta, nil
}

// ListSubscribersByCategory returns active subscribers of one master category.
func (s *Service) ListSubscribersByCategory(masterCategoryID string) ([]models.NewsletterSubscriberModel, error) {
	var subs []models.NewsletterSubscriberModel
	err := s.db.Model(&models.NewsletterSubscriberModel{}).
		Distinct("newsletter_subscribers.*").
		Joins("JOIN newsletter_subscriber_categories nsc ON nsc.subscriber_id = newsletter_subscribers.id").
		Where("nsc.master_category_id = ?", masterCategoryID).
		Where("newsletter_subscribers.is_verified = ? AND newsletter_subscribers.unsubscribed_at IS NULL", true).
		Order("newsletter_subscribers.created_at DESC").
		Preload("Categories").
		Find(&subs).Error
	return subs, err
}
