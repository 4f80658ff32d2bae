package models

import "time"

// NewsletterSubscriberModel manages newsletter subscriptions.
//
// PreferenceToken is generated once when the row is created and never
// re-issued: it is the unguessable capability behind preference and
// unsubscribe links. The verification token is single-use and expires;
// re-subscribing regenerates it and resets IsVerified.
type NewsletterSubscriberModel struct {
	Base
	Email                 string     `json:"email"             gorm:"uniqueIndex;not null"`
	PreferenceToken       string     `json:"-"                 gorm:"uniqueIndex;not null"`
	IsVerified            bool       `json:"is_verified"       gorm:"default:false"`
	VerificationToken     *string    `json:"-"                 gorm:"index"`
	VerificationExpiresAt *time.Time `json:"-"`
	UnsubscribedAt        *time.Time `json:"unsubscribed_at"   gorm:"index"`

	Categories []MasterCategoryModel `json:"categories,omitempty" gorm:"many2many:newsletter_subscriber_categories;joinForeignKey:SubscriberID;joinReferences:MasterCategoryID"`
}

func (NewsletterSubscriberModel) TableName() string { return "newsletter_subscribers" }

// IsActive reports whether the subscriber should receive outward-facing
// sends: verified and not opted out.
func (s *NewsletterSubscriberModel) IsActive() bool {
	return s.IsVerified && s.UnsubscribedAt == nil
}
