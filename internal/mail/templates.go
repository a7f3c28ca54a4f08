package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// ConfirmationSubject is the fixed subject of the acknowledgement sent to
// the person who filled in the form.
const ConfirmationSubject = "Thank you for your message"

const baseStyle = `
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #5e3023; color: #fff; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
      .content { padding: 20px; border: 1px solid #ddd; border-top: none; border-radius: 0 0 5px 5px; }
      .footer { margin-top: 20px; font-size: 12px; color: #777; text-align: center; }`

var notificationTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>New Contact Form Submission</title>
    <style>` + baseStyle + `
      .label { font-weight: bold; margin-bottom: 5px; }
      .message { background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin-top: 10px; white-space: pre-wrap; }
    </style>
  </head>
  <body>
    <div class="header">
      <h1>New Contact Form Submission</h1>
    </div>
    <div class="content">
      <p>You have received a new message from your portfolio website contact form.</p>

      <p class="label">Name:</p>
      <p>{{.Name}}</p>

      <p class="label">Email:</p>
      <p>{{.Email}}</p>

      <p class="label">Message:</p>
      <div class="message">{{.Message}}</div>
    </div>
    <div class="footer">
      <p>This email was sent from your portfolio website.</p>
    </div>
  </body>
</html>
`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Thank You for Your Message</title>
    <style>` + baseStyle + `
    </style>
  </head>
  <body>
    <div class="header">
      <h1>Thank You for Your Message</h1>
    </div>
    <div class="content">
      <p>Hello {{.Name}},</p>

      <p>Thank you for reaching out through my portfolio website. I have received your message and will get back to you as soon as possible.</p>

      <p>In the meantime, feel free to explore more of my work and projects.</p>

      <p>Best regards,<br>{{.Signature}}</p>
    </div>
    <div class="footer">
      <p>This is an automated response. Please do not reply to this email.</p>
    </div>
  </body>
</html>
`))

// Composer builds the two emails sent for every accepted submission.
// Values supplied by the form are HTML-escaped by the templates.
type Composer struct {
	Operator  string // recipient of notifications
	Signature string // closing name in confirmations
}

// Notification is addressed to the operator and carries the full submission.
func (c Composer) Notification(name, email, message string) (Message, error) {
	var buf bytes.Buffer
	err := notificationTmpl.Execute(&buf, struct {
		Name, Email, Message string
	}{name, email, message})
	if err != nil {
		return Message{}, fmt.Errorf("render notification: %w", err)
	}
	return Message{
		To:      c.Operator,
		Subject: "New Contact Form Submission from " + name,
		HTML:    buf.String(),
	}, nil
}

// Confirmation is addressed to the sender. It does not repeat their message.
func (c Composer) Confirmation(name, email string) (Message, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		Name, Signature string
	}{name, c.Signature})
	if err != nil {
		return Message{}, fmt.Errorf("render confirmation: %w", err)
	}
	return Message{
		To:      email,
		Subject: ConfirmationSubject,
		HTML:    buf.String(),
	}, nil
}
