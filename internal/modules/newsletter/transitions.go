package newsletter

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/parathan/blog-core/internal/models"
)

// verificationTTL is how long a confirmation link stays valid.
const verificationTTL = 24 * time.Hour

// newToken returns a 64-char hex token from 32 random bytes.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// beginVerification arms a fresh verification token on the subscriber. Used
// for first-time subscribes and every re-subscribe: verified status is always
// reset so a changed category set is re-confirmed by the address owner.
func beginVerification(sub *models.NewsletterSubscriberModel, token string, now time.Time) {
	expires := now.Add(verificationTTL)
	sub.VerificationToken = &token
	sub.VerificationExpiresAt = &expires
	sub.IsVerified = false
	sub.UnsubscribedAt = nil
}

type verifyOutcome int

const (
	verifyOK verifyOutcome = iota
	verifyAlreadyDone
	verifyExpired
)

// applyVerify consumes the verification token. Verifying an already verified
// subscriber is a no-op; an expired token is terminal and the subscriber must
// subscribe again.
func applyVerify(sub *models.NewsletterSubscriberModel, now time.Time) verifyOutcome {
	if sub.IsVerified {
		return verifyAlreadyDone
	}
	if sub.VerificationExpiresAt == nil || now.After(*sub.VerificationExpiresAt) {
		return verifyExpired
	}
	sub.IsVerified = true
	sub.VerificationToken = nil
	sub.VerificationExpiresAt = nil
	return verifyOK
}

// applyUnsubscribe stamps the opt-out time. Repeated unsubscribes keep the
// original timestamp.
func applyUnsubscribe(sub *models.NewsletterSubscriberModel, now time.Time) {
	if sub.UnsubscribedAt == nil {
		sub.UnsubscribedAt = &now
	}
}
