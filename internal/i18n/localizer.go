// internal/i18n/localizer.go
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"path"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"calorie-log/internal/models"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Message IDs shared by the front ends.
const (
	TitleSuccess = "title_success"
	TitleError   = "title_error"
	TitleWarning = "title_warning"
	TitleInfo    = "title_info"
	TitleResult  = "title_result"
)

// Localizer renders messages for one language. It is built once at
// startup and handed to whoever needs text.
type Localizer struct {
	lang      models.Language
	localizer *goi18n.Localizer
}

// New loads the embedded message files and returns a localizer for lang.
// Messages missing in lang fall back to English.
func New(lang models.Language) (*Localizer, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}
	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		data, err := localeFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}

	return &Localizer{
		lang:      lang,
		localizer: goi18n.NewLocalizer(bundle, string(lang), string(models.LangEN)),
	}, nil
}

func (l *Localizer) Language() models.Language { return l.lang }

// T renders message id with optional template data. Unknown ids render as
// the id itself.
func (l *Localizer) T(id string, data ...map[string]any) string {
	cfg := &goi18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := l.localizer.Localize(cfg)
	if err != nil {
		return id
	}
	return msg
}

// Error renders a user-facing message for the error taxonomy of the data
// layer. Unknown errors render their own text.
func (l *Localizer) Error(err error) string {
	var (
		validation *models.ValidationError
		notFound   *models.NotFoundError
		ioErr      *models.IOError
		period     *models.PeriodError
	)

	switch {
	case errors.As(err, &validation):
		return l.validation(validation)
	case errors.As(err, &notFound):
		return l.T("err_product_not_found", map[string]any{"Name": notFound.Name})
	case errors.Is(err, models.ErrAlreadyExists):
		return l.T("product_exists")
	case errors.Is(err, models.ErrUnsupportedLanguage):
		return l.T("err_unsupported_language")
	case errors.As(err, &period):
		return l.T("err_unknown_period", map[string]any{"Period": period.Period})
	case errors.As(err, &ioErr):
		return l.T("err_io", map[string]any{"Path": ioErr.Path})
	}
	return err.Error()
}

func (l *Localizer) validation(v *models.ValidationError) string {
	data := map[string]any{"Field": v.Field, "Value": v.Value}
	switch v.Reason {
	case models.ReasonMissingData:
		if v.Field == models.FieldName {
			return l.T("err_missing_name")
		}
		return l.T("err_missing_data")
	case models.ReasonWrongType:
		return l.T("err_wrong_type", data)
	case models.ReasonNotANumber:
		if v.Field == models.FieldDate {
			return l.T("err_invalid_date", data)
		}
		return l.T("err_not_a_number", data)
	case models.ReasonNonPositive:
		if v.Field == models.FieldDays {
			return l.T("err_invalid_days")
		}
		return l.T("err_non_positive", data)
	case models.ReasonNoItems:
		return l.T("err_no_items")
	}
	return v.Error()
}
