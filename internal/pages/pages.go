// Package pages turns classified routes into page and redirect commands.
package pages

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/handbook/internal/logfields"
	"git.home.luguber.info/inful/handbook/internal/route"
)

// DefaultComponent is the chapter template shared by every emitted page.
const DefaultComponent = "src/dynamic-pages/visual-testing-handbook/chapter.js"

// Redirect asks the site to send FromPath to ToPath.
type Redirect struct {
	FromPath          string `json:"fromPath"`
	ToPath            string `json:"toPath"`
	IsPermanent       bool   `json:"isPermanent"`
	RedirectInBrowser bool   `json:"redirectInBrowser"`
}

// Context is the data handed to the page template. It never carries the
// language display name.
type Context struct {
	Guide     string `json:"guide"`
	Slug      string `json:"slug"`
	Framework string `json:"framework"`
	Language  string `json:"language"`
	Chapter   string `json:"chapter"`
}

// Page asks the site to render Component at Path.
type Page struct {
	Path      string  `json:"path"`
	Component string  `json:"component"`
	Context   Context `json:"context"`
}

// Actions receives the emitted commands.
type Actions interface {
	CreatePage(Page) error
	CreateRedirect(Redirect) error
}

// Summary counts what one emission produced.
type Summary struct {
	Pages     int
	Redirects int
}

// Emitter produces one page per route and a legacy redirect for routes in
// the default translation.
type Emitter struct {
	Component string
	Logger    *slog.Logger
}

// NewEmitter returns an Emitter rendering pages with component.
func NewEmitter(component string, logger *slog.Logger) *Emitter {
	if component == "" {
		component = DefaultComponent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{Component: component, Logger: logger}
}

// Emit processes every route once and returns after the last command.
// Errors from actions are returned unchanged.
func (e *Emitter) Emit(ctx context.Context, table []route.Metadata, defaultTranslation string, actions Actions) (Summary, error) {
	var sum Summary
	for _, m := range table {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		if m.TranslationKey() == defaultTranslation {
			r := Redirect{
				FromPath:          "/" + m.Chapter + "/",
				ToPath:            m.Slug,
				IsPermanent:       true,
				RedirectInBrowser: true,
			}
			if err := actions.CreateRedirect(r); err != nil {
				return sum, err
			}
			sum.Redirects++
			e.Logger.Debug("Redirect created", slog.String("from", r.FromPath), logfields.Slug(r.ToPath))
		}

		if err := actions.CreatePage(e.page(m)); err != nil {
			return sum, err
		}
		sum.Pages++
		e.Logger.Debug("Page created", logfields.Slug(m.Slug), logfields.Language(m.Language))
	}
	return sum, nil
}

// EmitAsync runs Emit in a goroutine. The returned channel receives exactly
// one value once every route has been processed.
func (e *Emitter) EmitAsync(ctx context.Context, table []route.Metadata, defaultTranslation string, actions Actions) <-chan error {
	done := make(chan error, 1)
	go func() {
		_, err := e.Emit(ctx, table, defaultTranslation, actions)
		done <- err
	}()
	return done
}

func (e *Emitter) page(m route.Metadata) Page {
	return Page{
		Path:      m.Slug,
		Component: e.Component,
		Context: Context{
			Guide:     m.Guide,
			Slug:      m.Slug,
			Framework: m.Framework,
			Language:  m.Language,
			Chapter:   m.Chapter,
		},
	}
}
