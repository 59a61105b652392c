package aspects

import (
	"fmt"
	"regexp"

	"guibox/internal/errdefs"
)

var localePattern = regexp.MustCompile(`^[a-z]{2,3}_[A-Z]{2}(\.[A-Za-z0-9-]+)?$`)

// Locale sets the container's language environment and generates the
// matching locale during the image build.
type Locale struct {
	Base
	Lang string
}

func (Locale) Name() string { return "Locale" }

// NewLocale validates the locale string (xx_YY or xx_YY.Encoding).
func NewLocale(lang string) (*Locale, error) {
	if !localePattern.MatchString(lang) {
		return nil, fmt.Errorf("%w: %q", errdefs.ErrInvalidLocale, lang)
	}
	return &Locale{Lang: lang}, nil
}

func (l Locale) RunArgs(Config) ([]string, error) {
	if l.Lang == "" {
		return nil, nil
	}
	if !localePattern.MatchString(l.Lang) {
		return nil, fmt.Errorf("%w: %q", errdefs.ErrInvalidLocale, l.Lang)
	}
	return []string{
		"-e", "LANG=" + l.Lang,
		"-e", "LC_ALL=" + l.Lang,
	}, nil
}

func (l Locale) DockerfileSnippets() []DockerfileSnippet {
	if l.Lang == "" {
		return nil
	}
	return []DockerfileSnippet{{
		Order:   85,
		Content: fmt.Sprintf(`RUN echo "%s UTF-8" >> /etc/locale.gen && locale-gen`, l.Lang),
	}}
}

func (Locale) ConfigArgs() []Option {
	return []Option{{Name: "locale", Usage: "container locale (e.g. en_US.UTF-8)"}}
}
