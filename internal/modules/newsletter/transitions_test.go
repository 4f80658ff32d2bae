package newsletter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parathan/blog-core/internal/models"
)

func TestNewToken(t *testing.T) {
	a, err := newToken()
	require.NoError(t, err)
	b, err := newToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestBeginVerificationResetsState(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	sub := &models.NewsletterSubscriberModel{
		IsVerified:     true,
		UnsubscribedAt: &past,
	}

	beginVerification(sub, "tok", now)

	assert.False(t, sub.IsVerified)
	assert.Nil(t, sub.UnsubscribedAt)
	require.NotNil(t, sub.VerificationToken)
	assert.Equal(t, "tok", *sub.VerificationToken)
	require.NotNil(t, sub.VerificationExpiresAt)
	assert.Equal(t, now.Add(verificationTTL), *sub.VerificationExpiresAt)
}

func TestApplyVerify(t *testing.T) {
	now := time.Now()

	t.Run("valid token verifies and clears it", func(t *testing.T) {
		sub := &models.NewsletterSubscriberModel{}
		beginVerification(sub, "tok", now)

		outcome := applyVerify(sub, now.Add(time.Minute))

		assert.Equal(t, verifyOK, outcome)
		assert.True(t, sub.IsVerified)
		assert.Nil(t, sub.VerificationToken)
		assert.Nil(t, sub.VerificationExpiresAt)
	})

	t.Run("already verified is a no-op", func(t *testing.T) {
		sub := &models.NewsletterSubscriberModel{IsVerified: true}

		assert.Equal(t, verifyAlreadyDone, applyVerify(sub, now))
		assert.True(t, sub.IsVerified)
	})

	t.Run("expired token does not verify", func(t *testing.T) {
		sub := &models.NewsletterSubscriberModel{}
		beginVerification(sub, "tok", now.Add(-2*verificationTTL))

		assert.Equal(t, verifyExpired, applyVerify(sub, now))
		assert.False(t, sub.IsVerified)
		assert.NotNil(t, sub.VerificationToken)
	})

	t.Run("missing expiry counts as expired", func(t *testing.T) {
		sub := &models.NewsletterSubscriberModel{}

		assert.Equal(t, verifyExpired, applyVerify(sub, now))
	})
}

func TestApplyUnsubscribeIdempotent(t *testing.T) {
	sub := &models.NewsletterSubscriberModel{IsVerified: true}
	first := time.Now()

	applyUnsubscribe(sub, first)
	require.NotNil(t, sub.UnsubscribedAt)
	assert.Equal(t, first, *sub.UnsubscribedAt)

	applyUnsubscribe(sub, first.Add(time.Hour))
	assert.Equal(t, first, *sub.UnsubscribedAt)
}

func TestIsActive(t *testing.T) {
	now := time.Now()

	assert.True(t, (&models.NewsletterSubscriberModel{IsVerified: true}).IsActive())
	assert.False(t, (&models.NewsletterSubscriberModel{}).IsActive())
	assert.False(t, (&models.NewsletterSubscriberModel{IsVerified: true, UnsubscribedAt: &now}).IsActive())
}
