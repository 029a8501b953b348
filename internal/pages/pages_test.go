package pages

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"git.home.luguber.info/inful/handbook/internal/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, paths ...string) []route.Metadata {
	t.Helper()
	out := make([]route.Metadata, 0, len(paths))
	for _, p := range paths {
		m, err := route.Classify(p)
		require.NoError(t, err)
		out = append(out, m)
	}
	return out
}

func TestEmit_EndToEndExample(t *testing.T) {
	table := classify(t, "/get-started/react/en/introduction/")
	rec := NewRecorder()

	sum, err := NewEmitter("", nil).Emit(context.Background(), table, "react/en", rec)
	require.NoError(t, err)
	require.Equal(t, Summary{Pages: 1, Redirects: 1}, sum)

	require.Equal(t, []Redirect{{
		FromPath:          "/introduction/",
		ToPath:            "/get-started/react/en/introduction/",
		IsPermanent:       true,
		RedirectInBrowser: true,
	}}, rec.Redirects())

	require.Equal(t, []Page{{
		Path:      "/get-started/react/en/introduction/",
		Component: DefaultComponent,
		Context: Context{
			Guide:     "get-started",
			Slug:      "/get-started/react/en/introduction/",
			Framework: "react",
			Language:  "en",
			Chapter:   "introduction",
		},
	}}, rec.Pages())
}

func TestEmit_NoMatchingTranslation(t *testing.T) {
	table := classify(t,
		"/get-started/react/es/introduction/",
		"/get-started/vue/en/introduction/",
		"/get-started/angular/pt/testing/",
	)
	rec := NewRecorder()

	sum, err := NewEmitter("chapter.tmpl", nil).Emit(context.Background(), table, "react/en", rec)
	require.NoError(t, err)
	require.Equal(t, 3, sum.Pages)
	require.Zero(t, sum.Redirects)
	require.Empty(t, rec.Redirects())
	require.Len(t, rec.Pages(), 3)
	for _, p := range rec.Pages() {
		assert.Equal(t, "chapter.tmpl", p.Component)
	}
}

func TestEmit_MixedTable(t *testing.T) {
	table := classify(t,
		"/get-started/react/en/introduction/",
		"/get-started/react/en/testing/",
		"/get-started/react/es/introduction/",
		"/get-started/vue/en/introduction/",
	)
	rec := NewRecorder()

	_, err := NewEmitter("", nil).Emit(context.Background(), table, "react/en", rec)
	require.NoError(t, err)

	require.Len(t, rec.Pages(), 4)
	froms := []string{}
	for _, r := range rec.Redirects() {
		froms = append(froms, r.FromPath)
		assert.True(t, r.IsPermanent)
		assert.True(t, r.RedirectInBrowser)
	}
	require.ElementsMatch(t, []string{"/introduction/", "/testing/"}, froms)
}

func TestPageContext_HasNoLanguageName(t *testing.T) {
	table := classify(t, "/get-started/react/zh-CN/introduction/")
	rec := NewRecorder()
	_, err := NewEmitter("", nil).Emit(context.Background(), table, "", rec)
	require.NoError(t, err)

	raw, err := json.Marshal(rec.Pages()[0].Context)
	require.NoError(t, err)

	var keys map[string]any
	require.NoError(t, json.Unmarshal(raw, &keys))
	require.NotContains(t, keys, "languageName")
	require.Len(t, keys, 5)
	for _, k := range []string{"guide", "slug", "framework", "language", "chapter"} {
		require.Contains(t, keys, k)
	}
}

type failingActions struct {
	pageErr     error
	redirectErr error
}

func (f failingActions) CreatePage(Page) error         { return f.pageErr }
func (f failingActions) CreateRedirect(Redirect) error { return f.redirectErr }

func TestEmit_ActionErrorsAreReturnedUnchanged(t *testing.T) {
	table := classify(t, "/get-started/react/en/introduction/")
	boom := errors.New("boom")

	_, err := NewEmitter("", nil).Emit(context.Background(), table, "react/en", failingActions{redirectErr: boom})
	require.Same(t, boom, err)

	sum, err := NewEmitter("", nil).Emit(context.Background(), table, "vue/en", failingActions{pageErr: boom})
	require.Same(t, boom, err)
	require.Zero(t, sum.Pages)
}

func TestEmit_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := NewRecorder()
	_, err := NewEmitter("", nil).Emit(ctx, classify(t, "/a/b/c/d/"), "", rec)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, rec.Pages())
}

func TestEmitAsync_CompletesAfterAllEntries(t *testing.T) {
	table := classify(t,
		"/get-started/react/en/introduction/",
		"/get-started/react/en/testing/",
		"/get-started/react/es/testing/",
	)
	rec := NewRecorder()

	done := NewEmitter("", nil).EmitAsync(context.Background(), table, "react/en", rec)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("emission did not complete")
	}
	require.Len(t, rec.Pages(), 3)
	require.Len(t, rec.Redirects(), 2)
}

func TestMulti(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	actions := Multi(a, b)

	require.NoError(t, actions.CreatePage(Page{Path: "/x/"}))
	require.NoError(t, actions.CreateRedirect(Redirect{FromPath: "/y/"}))
	require.Len(t, a.Pages(), 1)
	require.Len(t, b.Redirects(), 1)

	boom := errors.New("boom")
	c := NewRecorder()
	err := Multi(failingActions{pageErr: boom}, c).CreatePage(Page{})
	require.ErrorIs(t, err, boom)
	require.Empty(t, c.Pages())
}
