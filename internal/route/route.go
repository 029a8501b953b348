package route

import "strings"

const segmentCount = 4

// Field names used when annotating content nodes.
const (
	FieldGuide        = "guide"
	FieldSlug         = "slug"
	FieldFramework    = "framework"
	FieldLanguage     = "language"
	FieldLanguageName = "languageName"
	FieldChapter      = "chapter"
)

// Metadata is the route information derived from one content path.
type Metadata struct {
	Guide     string
	Slug      string
	Framework string
	Language  string
	// LanguageName is empty when HasLanguageName is false.
	LanguageName    string
	HasLanguageName bool
	Chapter         string
}

// TranslationKey identifies the localized variant, e.g. "react/en".
func (m Metadata) TranslationKey() string {
	return m.Framework + "/" + m.Language
}

// Field is a single node annotation.
type Field struct {
	Name  string
	Value any
}

// Fields returns the six node annotations in a fixed order. The languageName
// value is nil when the language has no display name.
func (m Metadata) Fields() []Field {
	var languageName any
	if m.HasLanguageName {
		languageName = m.LanguageName
	}
	return []Field{
		{Name: FieldGuide, Value: m.Guide},
		{Name: FieldSlug, Value: m.Slug},
		{Name: FieldFramework, Value: m.Framework},
		{Name: FieldLanguage, Value: m.Language},
		{Name: FieldLanguageName, Value: languageName},
		{Name: FieldChapter, Value: m.Chapter},
	}
}

// Classify splits rawPath into route metadata. Empty segments produced by
// leading, trailing or doubled separators are ignored. Slug keeps rawPath
// unchanged.
func Classify(rawPath string) (Metadata, error) {
	parts := segments(rawPath)
	if len(parts) != segmentCount {
		return Metadata{}, &MalformedPathError{Path: rawPath, Segments: len(parts)}
	}

	m := Metadata{
		Guide:     parts[0],
		Slug:      rawPath,
		Framework: parts[1],
		Language:  parts[2],
		Chapter:   parts[3],
	}
	m.LanguageName, m.HasLanguageName = LanguageName(m.Language)
	return m, nil
}

func segments(p string) []string {
	raw := strings.Split(p, "/")
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
