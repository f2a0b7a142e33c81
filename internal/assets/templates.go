package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/validation-mail.txt.go.tmpl
var fallbackValidationMailTemplate string

const validationMailTemplateName = "validation-mail.txt.go.tmpl"

// ValidationMail is the data of the e-mail sent to confirm an address.
type ValidationMail struct {
	Email         string
	Tool          string
	ValidationURL string
}

// ParseValidationMailTemplate parses the template at templatePath, or the
// embedded one when templatePath is empty or cannot be used.
func ParseValidationMailTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, validationMailTemplateName, fallbackValidationMailTemplate)
}

// WriteValidationMail renders the validation mail body into output.
func WriteValidationMail(output io.Writer, tmpl *template.Template, mail ValidationMail) error {
	if err := tmpl.Execute(output, mail); err != nil {
		return fmt.Errorf("tmpl.Execute > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
