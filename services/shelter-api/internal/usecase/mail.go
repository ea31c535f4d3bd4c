package usecase

import (
	"bytes"
	"html/template"
)

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "password_reset"}}
<p>Hi {{.Name}},</p>
<p>We received a request to reset the password for your account.</p>
<p>If you made this request, please click the link below to create a new password:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>This link will expire in {{.ExpiresIn}}.</p>
<p>If you did not request a password reset, you can ignore this email and your account will stay as it is.</p>
<p>Thank you,<br>The Animal Shelter Team</p>
{{end}}

{{define "volunteer_confirmation"}}
<p>Hi {{.Name}},</p>
<p>Thank you for signing up to volunteer with us! Our team will review your application and get back to you soon.</p>
{{if .Availability}}<p>Availability: {{.Availability}}</p>{{end}}
{{if .Interests}}<p>Interests: {{range $i, $v := .Interests}}{{if $i}}, {{end}}{{$v}}{{end}}</p>{{end}}
<p>Thank you,<br>The Animal Shelter Team</p>
{{end}}

{{define "donation_receipt"}}
<p>Hi {{.DonorName}},</p>
<p>Thank you for your generous donation of {{printf "%.2f" .Amount}} {{.Currency}}.</p>
<p>Your receipt number is <strong>{{.ReceiptID}}</strong>.</p>
<p>Thank you,<br>The Animal Shelter Team</p>
{{end}}
`))

func renderMail(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
