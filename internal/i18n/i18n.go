// Package i18n renders client-facing messages from embedded catalogs.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/yaml.v3"

	"github.com/designemotion/transcript/internal/apperr"
)

const DefaultLanguage = "en"

// Message ids that are not error tags.
const (
	MsgValidationMailSent = "validation_mail_sent"
	MsgKeyRegistered      = "key_registered"
)

//go:embed catalogs/*.yaml
var catalogs embed.FS

// Localizer maps message ids and error tags to text in a language.
// Languages without a catalog, and ids missing from a catalog, fall back to English.
type Localizer struct {
	universal *ut.UniversalTranslator
	// arity is the number of placeholders of each message, per language.
	arity     map[string]map[string]int
	languages []string
}

func New() (*Localizer, error) {
	supported := []locales.Translator{en.New(), fr.New(), es.New(), de.New()}
	l := &Localizer{
		universal: ut.New(supported[0], supported...),
		arity:     make(map[string]map[string]int),
	}

	for _, loc := range supported {
		name := loc.Locale()
		trans, found := l.universal.GetTranslator(name)
		if !found {
			return nil, fmt.Errorf("translator for %s not found", name)
		}
		arity, err := load(trans, name)
		if err != nil {
			return nil, err
		}
		l.arity[name] = arity
		l.languages = append(l.languages, name)
	}
	sort.Strings(l.languages)
	return l, nil
}

func load(trans ut.Translator, language string) (map[string]int, error) {
	file := path.Join("catalogs", language+".yaml")
	raw, err := catalogs.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("catalogs.ReadFile(%s) > %w", file, err)
	}
	var messages map[string]string
	if err := yaml.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", file, err)
	}

	arity := make(map[string]int, len(messages))
	for id, text := range messages {
		if err := trans.Add(id, text, false); err != nil {
			return nil, fmt.Errorf("add %s message %q: %w", language, id, err)
		}
		arity[id] = strings.Count(text, "{")
	}
	return arity, nil
}

// Languages returns the languages that have a catalog.
func (l *Localizer) Languages() []string {
	return l.languages
}

// Text renders message id in language with positional args.
// An id unknown to every catalog is returned as is.
func (l *Localizer) Text(id, language string, args ...string) string {
	language = normalize(language)
	if _, ok := l.arity[language][id]; !ok {
		language = DefaultLanguage
	}
	n, ok := l.arity[language][id]
	if !ok {
		return id
	}

	// Translator.T panics when given fewer params than placeholders.
	params := make([]string, max(n, len(args)))
	copy(params, args)

	trans, _ := l.universal.GetTranslator(language)
	text, err := trans.T(id, params...)
	if err != nil {
		return id
	}
	return text
}

// Message renders err for the client. Business errors carry their own
// arguments. Every other error gets the generic message of its tag and never
// exposes its detail.
func (l *Localizer) Message(err error, language string) string {
	if be, ok := apperr.AsBusiness(err); ok {
		return l.Text(string(be.Tag()), language, be.Args()...)
	}
	return l.Text(string(apperr.TagOf(err)), language)
}

// normalize reduces "fr-FR" or "fr_fr" to "fr".
func normalize(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(language, "-_"); i >= 0 {
		language = language[:i]
	}
	return language
}
