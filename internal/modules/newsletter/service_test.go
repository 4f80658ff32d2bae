package newsletter

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/parathan/blog-core/internal/models"
	"github.com/parathan/blog-core/internal/pkg/mail"
	"github.com/parathan/blog-core/internal/pkg/pagination"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.MasterCategoryModel{},
		&models.NewsletterSubscriberModel{},
	))
	return NewService(db, mail.New(mail.Config{}), zap.NewNop(),
		"http://localhost:3000", "http://localhost:5173")
}

func seedMasterCategory(t *testing.T, s *Service, name string) models.MasterCategoryModel {
	t.Helper()
	mc := models.MasterCategoryModel{Name: name, Slug: strings.ToLower(name), IsActive: true, DisplayOrder: 1}
	require.NoError(t, s.db.Create(&mc).Error)
	return mc
}

func reload(t *testing.T, s *Service, email string) models.NewsletterSubscriberModel {
	t.Helper()
	var sub models.NewsletterSubscriberModel
	require.NoError(t, s.db.Preload("Categories").Where("email = ?", email).First(&sub).Error)
	return sub
}

func TestSubscribeCreatesUnverifiedSubscriber(t *testing.T) {
	s := newTestService(t)
	tech := seedMasterCategory(t, s, "Tech")
	travel := seedMasterCategory(t, s, "Travel")

	sub, err := s.Subscribe(&SubscribeDTO{
		Email:       "a@example.com",
		CategoryIDs: []string{tech.ID, travel.ID},
	})
	require.NoError(t, err)

	assert.False(t, sub.IsVerified)
	assert.Len(t, sub.PreferenceToken, 64)
	assert.Len(t, sub.Categories, 2)

	stored := reload(t, s, "a@example.com")
	require.NotNil(t, stored.VerificationToken)
	require.NotNil(t, stored.VerificationExpiresAt)
	assert.True(t, stored.VerificationExpiresAt.After(time.Now()))
}

func TestSubscribeUnknownCategoryWritesNothing(t *testing.T) {
	s := newTestService(t)
	tech := seedMasterCategory(t, s, "Tech")

	_, err := s.Subscribe(&SubscribeDTO{
		Email:       "a@example.com",
		CategoryIDs: []string{tech.ID, "no-such-id"},
	})
	assert.ErrorIs(t, err, errUnknownCategories)

	var count int64
	require.NoError(t, s.db.Model(&models.NewsletterSubscriberModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestResubscribeReplacesCategoriesAndResetsVerification(t *testing.T) {
	s := newTestService(t)
	tech := seedMasterCategory(t, s, "Tech")
	travel := seedMasterCategory(t, s, "Travel")

	first, err := s.Subscribe(&SubscribeDTO{Email: "a@example.com", CategoryIDs: []string{tech.ID}})
	require.NoError(t, err)

	stored := reload(t, s, "a@example.com")
	_, err = s.Verify(*stored.VerificationToken)
	require.NoError(t, err)
	require.True(t, reload(t, s, "a@example.com").IsVerified)

	second, err := s.Subscribe(&SubscribeDTO{Email: "a@example.com", CategoryIDs: []string{travel.ID}})
	require.NoError(t, err)

	// the preference token is stable across re-subscribes
	assert.Equal(t, first.PreferenceToken, second.PreferenceToken)

	stored = reload(t, s, "a@example.com")
	assert.False(t, stored.IsVerified)
	assert.Nil(t, stored.UnsubscribedAt)
	require.Len(t, stored.Categories, 1)
	assert.Equal(t, travel.ID, stored.Categories[0].ID)
}

func TestVerifyTokenIsSingleUse(t *testing.T) {
	s := newTestService(t)
	tech := seedMasterCategory(t, s, "Tech")

	_, err := s.Subscribe(&SubscribeDTO{Email: "a@example.com", CategoryIDs: []string{tech.ID}})
	require.NoError(t, err)

	token := *reload(t, s, "a@example.com").VerificationToken
	sub, err := s.Verify(token)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.True(t, sub.IsVerified)

	// the consumed token no longer resolves
	sub, err = s.Verify(token)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestVerifyExpiredTokenStaysUnverified(t *testing.T) {
	s := newTestService(t)
	tech := seedMasterCategory(t, s, "Tech")

	_, err := s.Subscribe(&SubscribeDTO{Email: "a@example.com", CategoryIDs: []string{tech.ID}})
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, s.db.Model(&models.NewsletterSubscriberModel{}).
		Where("email = ?", "a@example.com").
		Update("verification_expires_at", past).Error)

	token := *reload(t, s, "a@example.com").VerificationToken
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, errExpiredToken)
	assert.False(t, reload(t, s, "a@example.com").IsVerified)
}

func TestUnsubscribeKeepsFirstTimestamp(t *testing.T) {
	s := newTestService(t)
	tech := seedMasterCategory(t, s, "Tech")

	_, err := s.Subscribe(&SubscribeDTO{Email: "a@example.com", CategoryIDs: []string{tech.ID}})
	require.NoError(t, err)
	token := reload(t, s, "a@example.com").PreferenceToken

	first, err := s.Unsubscribe(token)
	require.NoError(t, err)
	require.NotNil(t, first.UnsubscribedAt)
	stamp := *first.UnsubscribedAt

	time.Sleep(10 * time.Millisecond)
	second, err := s.Unsubscribe(token)
	require.NoError(t, err)
	require.NotNil(t, second.UnsubscribedAt)
	assert.Equal(t, stamp.Unix(), second.UnsubscribedAt.Unix())
	assert.False(t, second.UnsubscribedAt.After(stamp))
}

func TestUpdatePreferencesRequiresActiveSubscription(t *testing.T) {
	s := newTestService(t)
	tech := seedMasterCategory(t, s, "Tech")

	_, err := s.Subscribe(&SubscribeDTO{Email: "a@example.com", CategoryIDs: []string{tech.ID}})
	require.NoError(t, err)
	token := reload(t, s, "a@example.com").PreferenceToken

	// still unverified
	_, err = s.UpdatePreferences(token, &UpdatePreferencesDTO{CategoryIDs: []string{tech.ID}})
	assert.ErrorIs(t, err, errInactiveSubscriber)
}

func TestListSubscribersExcludesInactive(t *testing.T) {
	s := newTestService(t)
	tech := seedMasterCategory(t, s, "Tech")

	subscribe := func(email string) string {
		_, err := s.Subscribe(&SubscribeDTO{Email: email, CategoryIDs: []string{tech.ID}})
		require.NoError(t, err)
		return *reload(t, s, email).VerificationToken
	}

	// active: verified, never opted out
	_, err := s.Verify(subscribe("active@example.com"))
	require.NoError(t, err)

	// unverified: never clicked the link
	subscribe("pending@example.com")

	// opted out after verifying
	_, err = s.Verify(subscribe("gone@example.com"))
	require.NoError(t, err)
	_, err = s.Unsubscribe(reload(t, s, "gone@example.com").PreferenceToken)
	require.NoError(t, err)

	subs, _, err := s.ListSubscribers(pagination.Query{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "active@example.com", subs[0].Email)

	byCat, err := s.ListSubscribersByCategory(tech.ID)
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "active@example.com", byCat[0].Email)

	stats, err := s.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Active)
	assert.Equal(t, int64(1), stats.Unsubscribed)
	assert.Equal(t, int64(1), stats.Unverified)
}
