package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is recommended as fallback. Template selects one of
// the known transactional templates rendered by the worker.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

const TemplateWelcome = "welcome"

var welcomeTpl = template.Must(template.New(TemplateWelcome).Parse(`
<html><body>
<p>Bonjour {{.Name}},</p>
<p>Welcome to {{.AppName}}. Your account is ready: list items, chat with buyers
and sellers, and join the forum.</p>
<p>— The {{.AppName}} team</p>
</body></html>`))

// Render produces subject, text, and html bodies for a templated job.
func Render(job EmailJob) (subject, text, html string, err error) {
	switch job.Template {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err = welcomeTpl.Execute(&buf, job.Data); err != nil {
			return "", "", "", err
		}
		name, _ := job.Data["Name"].(string)
		app, _ := job.Data["AppName"].(string)
		subject = fmt.Sprintf("Welcome to %s", app)
		text = fmt.Sprintf("Bonjour %s, welcome to %s.", name, app)
		return subject, text, buf.String(), nil
	default:
		return job.Subject, job.Text, job.HTML, nil
	}
}
