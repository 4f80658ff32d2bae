package contact

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/models"
	"github.com/parathan/blog-core/internal/pkg/mail"
	"github.com/parathan/blog-core/internal/pkg/pagination"
	"github.com/parathan/blog-core/internal/pkg/response"
)

type CreateContactDTO struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type Service struct {
	db     *gorm.DB
	mailer *mail.Sender
	log    *zap.Logger
}

func NewService(db *gorm.DB, mailer *mail.Sender, log *zap.Logger) *Service {
	return &Service{db: db, mailer: mailer, log: log}
}

// Create stores the message, then notifies the owner and acknowledges the
// sender. Mail failures are logged but never fail the submission.
func (s *Service) Create(dto *CreateContactDTO) (*models.ContactMessageModel, error) {
	msg := models.ContactMessageModel{
		Name:    dto.Name,
		Email:   dto.Email,
		Subject: dto.Subject,
		Message: dto.Message,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}

	go func() {
		data := mail.ContactData{
			Name:    msg.Name,
			Email:   msg.Email,
			Subject: msg.Subject,
			Message: msg.Message,
		}
		if err := s.mailer.SendContactNotification(data); err != nil {
			s.log.Warn("contact notification mail failed", zap.Error(err))
		}
		if err := s.mailer.SendContactAutoReply(data); err != nil {
			s.log.Warn("contact auto-reply mail failed", zap.Error(err))
		}
	}()

	return &msg, nil
}

// List returns messages newest first. archived filters by archive state when
// non-nil.
func (s *Service) List(archived *bool, page pagination.Query) ([]models.ContactMessageModel, response.Pagination, error) {
	q := s.db.Model(&models.ContactMessageModel{}).Order("created_at DESC")
	if archived != nil {
		q = q.Where("is_archived = ?", *archived)
	}

	var msgs []models.ContactMessageModel
	meta, err := pagination.Paginate(q, page, &msgs)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return msgs, meta, nil
}

func (s *Service) GetByID(id string) (*models.ContactMessageModel, error) {
	var msg models.ContactMessageModel
	if err := s.db.First(&msg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (s *Service) MarkRead(id string) (*models.ContactMessageModel, error) {
	msg, err := s.GetByID(id)
	if err != nil || msg == nil {
		return msg, err
	}
	return msg, s.db.Model(msg).Update("is_read", true).Error
}

func (s *Service) Archive(id string) (*models.ContactMessageModel, error) {
	msg, err := s.GetByID(id)
	if err != nil || msg == nil {
		return msg, err
	}
	return msg, s.db.Model(msg).Update("is_archived", true).Error
}

func (s *Service) Delete(id string) error {
	return s.db.Delete(&models.ContactMessageModel{}, "id = ?", id).Error
}
