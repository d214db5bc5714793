package contact

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

var (
	SubjectTemplate = texttemplate.Must(texttemplate.New("subject").Parse(
		`New Contact Form Submission from {{.Name}}`))

	TextTemplate = texttemplate.Must(texttemplate.New("text").Parse(
		`Name: {{.Name}}
Email: {{.Email}}
Message: {{.Message}}`))

	HTMLTemplate = htmltemplate.Must(htmltemplate.New("html").Parse(
		`<html><body>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Message:</strong><br/>{{.Message}}</p>
</body></html>`))
)

// render builds the notification sent to the site owner.
func render(s Submission) (subject, text, html string, err error) {
	var b strings.Builder
	if err = SubjectTemplate.Execute(&b, s); err != nil {
		return
	}
	// header injection guard: a subject is a single line
	subject = strings.Join(strings.Fields(b.String()), " ")

	b.Reset()
	if err = TextTemplate.Execute(&b, s); err != nil {
		return
	}
	text = b.String()

	b.Reset()
	if err = HTMLTemplate.Execute(&b, s); err != nil {
		return
	}
	html = b.String()
	return
}
