package usecase

// emailTemplate pairs the subject line with an HTML body and its plain-text
// alternative. Bodies are parsed per send; the volume here does not justify
// caching parsed templates.
type emailTemplate struct {
	subject string
	html    string
	text    string
}

var formTemplates = map[string]emailTemplate{
	"enquiry": {
		subject: "We received your enquiry",
		html: `<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#1a1a2e">Thanks for reaching out{{if .name}}, {{.name}}{{end}}!</h2>
<p>We have received your enquiry and our counsellors will get back to you within 24 hours.</p>
{{if .course}}<p>Course of interest: <strong>{{.course}}</strong></p>{{end}}
<p>In the meantime, feel free to browse our course catalogue or reply to this email with any questions.</p>
<p>Warm regards,<br>Team {{.company_name}}</p>
<hr style="border:none;border-top:1px solid #eee">
<p style="color:#888;font-size:12px">Need help? Write to {{.support_email}}<br>&copy; {{.year}} {{.company_name}}</p>
</div>`,
		text: `Thanks for reaching out{{if .name}}, {{.name}}{{end}}!

We have received your enquiry and our counsellors will get back to you within 24 hours.
{{if .course}}Course of interest: {{.course}}
{{end}}
Warm regards,
Team {{.company_name}}

Need help? Write to {{.support_email}}`,
	},
	"contact": {
		subject: "Thanks for contacting Learnnect",
		html: `<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#1a1a2e">Hello{{if .name}} {{.name}}{{end}},</h2>
<p>Thank you for contacting us. Your message is with our team and you can expect a reply within one business day.</p>
<p>Warm regards,<br>Team {{.company_name}}</p>
<hr style="border:none;border-top:1px solid #eee">
<p style="color:#888;font-size:12px">Need help? Write to {{.support_email}}<br>&copy; {{.year}} {{.company_name}}</p>
</div>`,
		text: `Hello{{if .name}} {{.name}}{{end}},

Thank you for contacting us. Your message is with our team and you can expect a reply within one business day.

Warm regards,
Team {{.company_name}}

Need help? Write to {{.support_email}}`,
	},
	"newsletter": {
		subject: "You're on the list!",
		html: `<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#1a1a2e">Welcome aboard{{if .name}}, {{.name}}{{end}}!</h2>
<p>You are now subscribed to the {{.company_name}} newsletter. Expect course launches, learning tips, and the occasional discount in your inbox.</p>
<p>Warm regards,<br>Team {{.company_name}}</p>
<hr style="border:none;border-top:1px solid #eee">
<p style="color:#888;font-size:12px">Need help? Write to {{.support_email}}<br>&copy; {{.year}} {{.company_name}}</p>
</div>`,
		text: `Welcome aboard{{if .name}}, {{.name}}{{end}}!

You are now subscribed to the {{.company_name}} newsletter. Expect course launches, learning tips, and the occasional discount in your inbox.

Warm regards,
Team {{.company_name}}

Need help? Write to {{.support_email}}`,
	},
	"signup": {
		subject: "Welcome to Learnnect",
		html: `<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#1a1a2e">Welcome to {{.company_name}}, {{.name}}!</h2>
<p>Your account is ready. Log in to explore courses, book a free counselling session, and start learning.</p>
<p>Warm regards,<br>Team {{.company_name}}</p>
<hr style="border:none;border-top:1px solid #eee">
<p style="color:#888;font-size:12px">Need help? Write to {{.support_email}}<br>&copy; {{.year}} {{.company_name}}</p>
</div>`,
		text: `Welcome to {{.company_name}}, {{.name}}!

Your account is ready. Log in to explore courses, book a free counselling session, and start learning.

Warm regards,
Team {{.company_name}}

Need help? Write to {{.support_email}}`,
	},
}

var reviewTemplate = emailTemplate{
	subject: "Thanks for your review",
	html: `<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#1a1a2e">Thank you, {{.name}}!</h2>
<p>We received your {{.rating}}-star review. Every review goes through a quick moderation check and will appear on the site once approved.</p>
<p>Warm regards,<br>Team {{.company_name}}</p>
<hr style="border:none;border-top:1px solid #eee">
<p style="color:#888;font-size:12px">Need help? Write to {{.support_email}}<br>&copy; {{.year}} {{.company_name}}</p>
</div>`,
	text: `Thank you, {{.name}}!

We received your {{.rating}}-star review. Every review goes through a quick moderation check and will appear on the site once approved.

Warm regards,
Team {{.company_name}}

Need help? Write to {{.support_email}}`,
}
