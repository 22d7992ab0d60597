package notification

import (
	"bytes"
	"html/template"
)

// emailSubject is the subject line for direct SMTP deliveries. The relay
// service sets its own subjects, so this only applies to the SMTP path.
const emailSubject = "You have a new notification"

// emailTmpl is the HTML wrapper applied to SMTP-delivered messages.
// {{.Body}} is auto-escaped by html/template.
var emailTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1.0">
  <title>Notification</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f4f5;
     font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" role="presentation"
         style="background-color:#f4f4f5;padding:40px 16px;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" role="presentation"
               style="max-width:600px;width:100%;">
          <tr>
            <td style="background-color:#111827;padding:20px 40px;border-radius:12px 12px 0 0;">
              <span style="font-size:18px;font-weight:700;color:#ffffff;">notifyd</span>
              <span style="display:block;font-size:11px;color:#9ca3af;margin-top:2px;">
                Notification delivery
              </span>
            </td>
          </tr>
          <tr>
            <td style="background-color:#ffffff;padding:32px 40px;">
              <div style="font-size:14px;line-height:1.7;color:#374151;
                          white-space:pre-wrap;word-break:break-word;">{{.Body}}</div>
            </td>
          </tr>
          <tr>
            <td style="background-color:#f9fafb;padding:16px 40px;
                       border-top:1px solid #e5e7eb;border-radius:0 0 12px 12px;">
              <p style="margin:0;font-size:12px;color:#9ca3af;">
                You are receiving this because email notifications are enabled
                in your preferences.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`))

// buildEmailHTML renders the HTML email wrapper around the message body.
func buildEmailHTML(body string) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, struct{ Body string }{body}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
