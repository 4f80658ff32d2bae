package mail

import "html/template"

var verifyTpl = template.Must(template.New("verify").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Confirm your subscription</h2>
  <p>Thanks for signing up for the newsletter. Please confirm your email address by clicking the button below.</p>
  <p style="margin: 24px 0;">
    <a href="{{.VerifyURL}}" style="background: #2563eb; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Verify my email</a>
  </p>
  <p style="color: #666; font-size: 13px;">This link expires in 24 hours. If you did not request this, you can safely ignore this email.</p>
  <p style="color: #666; font-size: 13px;">Or paste this link into your browser:<br>{{.VerifyURL}}</p>
</div>
`))

var welcomeTpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">You're in!</h2>
  <p>Your subscription is confirmed. You'll receive updates about:</p>
  <ul>
    {{range .Categories}}<li>{{.}}</li>{{end}}
  </ul>
  <p style="color: #666; font-size: 13px;">You can change your topics or unsubscribe at any time from your <a href="{{.PreferencesURL}}">preferences page</a>.</p>
</div>
`))

var preferencesTpl = template.Must(template.New("preferences").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Preferences updated</h2>
  <p>Your newsletter topics are now:</p>
  <ul>
    {{range .Categories}}<li>{{.}}</li>{{end}}
  </ul>
  <p style="color: #666; font-size: 13px;">Not you? Manage your subscription on your <a href="{{.PreferencesURL}}">preferences page</a>.</p>
</div>
`))

var contactNotifyTpl = template.Must(template.New("contactNotify").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">New contact form submission</h2>
  <p><strong>From:</strong> {{.Name}} ({{.Email}})</p>
  {{if .Subject}}<p><strong>Subject:</strong> {{.Subject}}</p>{{end}}
  <p><strong>Message:</strong></p>
  <blockquote style="border-left: 3px solid #ddd; margin: 0; padding: 8px 16px; color: #444;">{{.Message}}</blockquote>
</div>
`))

var contactReplyTpl = template.Must(template.New("contactReply").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Thanks for reaching out, {{.Name}}!</h2>
  <p>I received your message and will get back to you as soon as I can.</p>
  <p><strong>Your message:</strong></p>
  <blockquote style="border-left: 3px solid #ddd; margin: 0; padding: 8px 16px; color: #444;">{{.Message}}</blockquote>
  <p style="color: #666; font-size: 13px;">This is an automated reply, no need to respond.</p>
</div>
`))

var passwordResetTpl = template.Must(template.New("passwordReset").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Password reset requested</h2>
  <p>Click the button below to choose a new password.</p>
  <p style="margin: 24px 0;">
    <a href="{{.ResetURL}}" style="background: #2563eb; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Reset password</a>
  </p>
  <p style="color: #666; font-size: 13px;">This link expires in 1 hour and can be used once. If you did not request a reset, ignore this email and your password stays unchanged.</p>
</div>
`))
