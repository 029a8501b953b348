package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeySlug       = "slug"
	KeyGuide      = "guide"
	KeyFramework  = "framework"
	KeyLanguage   = "language"
	KeyChapter    = "chapter"
	KeyPlugin     = "plugin"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Guide(g string) slog.Attr        { return slog.String(KeyGuide, g) }
func Framework(f string) slog.Attr    { return slog.String(KeyFramework, f) }
func Language(l string) slog.Attr     { return slog.String(KeyLanguage, l) }
func Chapter(c string) slog.Attr      { return slog.String(KeyChapter, c) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
