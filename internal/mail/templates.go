package mail

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ConfirmEmailBody renders the email-confirmation template.
func ConfirmEmailBody(appName, confirmURL string) (string, error) {
	return render("confirm_email.html", map[string]string{
		"AppName":    appName,
		"ConfirmURL": confirmURL,
	})
}

// PasswordResetBody renders the password-reset template.
func PasswordResetBody(appName, resetURL string) (string, error) {
	return render("password_reset.html", map[string]string{
		"AppName":  appName,
		"ResetURL": resetURL,
	})
}

func render(name string, data map[string]string) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return b.String(), nil
}
