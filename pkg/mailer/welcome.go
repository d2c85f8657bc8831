package mailer

import (
	"bytes"
	"html/template"
	"strings"
)

var welcomeHTML = template.Must(template.New("welcome").Parse(`<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Welcome{{if .FirstName}}, {{.FirstName}}{{end}}!</h2>
  <p>Your account has been created in the user directory.</p>
  <p>If you did not expect this email, you can safely ignore it.</p>
</body>
</html>`))

// RenderWelcome fills in subject, text and HTML for a welcome job when
// the job specified the welcome template. Jobs with explicit bodies are
// returned untouched.
func RenderWelcome(job *EmailJob) error {
	if job.Template != TemplateWelcome {
		return nil
	}
	if job.Subject == "" {
		job.Subject = "Welcome to the user directory"
	}
	if job.Text == "" {
		first, _ := job.Data["FirstName"].(string)
		last, _ := job.Data["LastName"].(string)
		name := strings.TrimSpace(first + " " + last)
		if name != "" {
			job.Text = "Welcome, " + name + "! Your account has been created in the user directory."
		} else {
			job.Text = "Welcome! Your account has been created in the user directory."
		}
	}
	if job.HTML == "" {
		var buf bytes.Buffer
		if err := welcomeHTML.Execute(&buf, job.Data); err != nil {
			return err
		}
		job.HTML = buf.String()
	}
	return nil
}
