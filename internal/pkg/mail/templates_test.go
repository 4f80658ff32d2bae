package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyTemplate(t *testing.T) {
	html, err := render(verifyTpl, VerifyData{VerifyURL: "https://api.example.com/api/newsletter/verify/abc"})
	require.NoError(t, err)
	assert.Contains(t, html, "https://api.example.com/api/newsletter/verify/abc")
	assert.Contains(t, html, "24 hours")
}

func TestWelcomeTemplate(t *testing.T) {
	html, err := render(welcomeTpl, WelcomeData{
		Categories:     []string{"Tech", "Travel"},
		PreferencesURL: "https://example.com/newsletter/preferences/tok",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Tech")
	assert.Contains(t, html, "Travel")
	assert.Contains(t, html, "preferences/tok")
}

func TestContactTemplatesEscapeInput(t *testing.T) {
	data := ContactData{
		Name:    "Mallory",
		Email:   "mallory@example.com",
		Subject: "hi",
		Message: "<script>alert(1)</script>",
	}

	html, err := render(contactNotifyTpl, data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")

	html, err = render(contactReplyTpl, data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Mallory")
}

func TestPasswordResetTemplate(t *testing.T) {
	html, err := render(passwordResetTpl, ResetData{ResetURL: "https://example.com/reset-password?token=xyz"})
	require.NoError(t, err)
	assert.Contains(t, html, "token=xyz")
}

func TestDisabledSenderIsNoOp(t *testing.T) {
	s := New(Config{Enable: false})
	assert.NoError(t, s.Send(Message{To: []string{"a@b.c"}, Subject: "x", HTML: "y"}))
	assert.NoError(t, s.SendContactNotification(ContactData{Email: "a@b.c"}))
}
