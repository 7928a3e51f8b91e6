package entities

// Resolution sources.
const (
	SourceLocale   = "locale"
	SourceTemplate = "template"
)

// Fallback reasons recorded when a locale resolves to the template.
const (
	FallbackMissing = "missing"
	FallbackEmpty   = "empty"
	FallbackInvalid = "invalid"
)

// Coverage counts template leaves served by the locale versus the template.
type Coverage struct {
	Total      int
	Translated int
	Fallback   int
}

// Ratio returns the translated share of leaves, 0 when there are none.
func (c Coverage) Ratio() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Translated) / float64(c.Total)
}

type LocaleReport struct {
	Locale   Locale
	Source   string
	Reason   string
	Path     string
	Missing  []string // written by the missing-component pass
	Written  []string // written by the main pass
	Skipped  []string // locale components the template does not define
	Coverage *Coverage
}

type Report struct {
	Locales []LocaleReport
}

// Artifacts returns the number of component writes across all locales.
func (r *Report) Artifacts() int {
	n := 0
	for _, l := range r.Locales {
		n += len(l.Missing) + len(l.Written)
	}
	return n
}
