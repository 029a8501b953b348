package route

import (
	"errors"
	"fmt"
	"testing"

	ferrors "git.home.luguber.info/inful/handbook/internal/foundation/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_EndToEndExample(t *testing.T) {
	m, err := Classify("/get-started/react/en/introduction/")
	require.NoError(t, err)

	require.Equal(t, Metadata{
		Guide:           "get-started",
		Slug:            "/get-started/react/en/introduction/",
		Framework:       "react",
		Language:        "en",
		LanguageName:    "English",
		HasLanguageName: true,
		Chapter:         "introduction",
	}, m)
	require.Equal(t, "react/en", m.TranslationKey())
}

func TestClassify_PositionalSegments(t *testing.T) {
	tests := []struct {
		raw                                 string
		guide, framework, language, chapter string
	}{
		{"/a/b/c/d/", "a", "b", "c", "d"},
		{"a/b/c/d", "a", "b", "c", "d"},
		{"//a//b/c/d//", "a", "b", "c", "d"},
		{"/visual-testing/vue/zh-TW/automate/", "visual-testing", "vue", "zh-TW", "automate"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			m, err := Classify(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.guide, m.Guide)
			assert.Equal(t, tt.framework, m.Framework)
			assert.Equal(t, tt.language, m.Language)
			assert.Equal(t, tt.chapter, m.Chapter)
			assert.Equal(t, tt.raw, m.Slug, "slug keeps the path as received")
		})
	}
}

func TestClassify_MalformedPath(t *testing.T) {
	tests := []struct {
		raw      string
		segments int
	}{
		{"", 0},
		{"/", 0},
		{"/guide/", 1},
		{"/guide/react/", 2},
		{"/guide/react/en/", 3},
		{"/guide/react/en/intro/extra/", 5},
		{"/a/b/c/d/e/f/", 6},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d segments %q", tt.segments, tt.raw), func(t *testing.T) {
			_, err := Classify(tt.raw)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrMalformedPath)

			var mpe *MalformedPathError
			require.True(t, errors.As(err, &mpe))
			require.Equal(t, tt.raw, mpe.Path)
			require.Equal(t, tt.segments, mpe.Segments)
		})
	}
}

func TestMalformedPathError_Classified(t *testing.T) {
	_, err := Classify("/only/three/parts/")
	var mpe *MalformedPathError
	require.ErrorAs(t, err, &mpe)

	classified := mpe.Classified()
	require.True(t, classified.IsFatal())
	require.Equal(t, ferrors.CategoryValidation, classified.Category())
	path, ok := classified.Context().GetString("path")
	require.True(t, ok)
	require.Equal(t, "/only/three/parts/", path)
	require.ErrorIs(t, classified, ErrMalformedPath)
}

func TestClassify_LanguageNames(t *testing.T) {
	want := map[string]string{
		"en":    "English",
		"es":    "Español",
		"zh-CN": "简体中文",
		"zh-TW": "繁體中文",
		"pt":    "Português",
	}
	for code, name := range want {
		m, err := Classify("/g/react/" + code + "/c/")
		require.NoError(t, err)
		assert.True(t, m.HasLanguageName, code)
		assert.Equal(t, name, m.LanguageName, code)
	}

	for _, code := range []string{"fr", "EN", "zh-cn", "pt-BR", "zh"} {
		m, err := Classify("/g/react/" + code + "/c/")
		require.NoError(t, err)
		assert.False(t, m.HasLanguageName, code)
		assert.Empty(t, m.LanguageName, code)
		assert.Equal(t, code, m.Language)
	}
}

func TestKnownLanguages(t *testing.T) {
	require.Equal(t, []string{"en", "es", "pt", "zh-CN", "zh-TW"}, KnownLanguages())

	codes := KnownLanguages()
	codes[0] = "xx"
	_, ok := LanguageName("xx")
	require.False(t, ok, "returned slice must not alias the table")
}

func TestMetadataFields(t *testing.T) {
	m, err := Classify("/get-started/react/en/introduction/")
	require.NoError(t, err)

	require.Equal(t, []Field{
		{FieldGuide, "get-started"},
		{FieldSlug, "/get-started/react/en/introduction/"},
		{FieldFramework, "react"},
		{FieldLanguage, "en"},
		{FieldLanguageName, "English"},
		{FieldChapter, "introduction"},
	}, m.Fields())

	unknown, err := Classify("/get-started/react/fr/introduction/")
	require.NoError(t, err)
	fields := unknown.Fields()
	require.Equal(t, FieldLanguageName, fields[4].Name)
	require.Nil(t, fields[4].Value)
}

type recordingNode struct {
	names  []string
	values map[string]any
	failOn string
}

func (n *recordingNode) CreateNodeField(name string, value any) error {
	if name == n.failOn {
		return errors.New("rejected")
	}
	if n.values == nil {
		n.values = map[string]any{}
	}
	n.names = append(n.names, name)
	n.values[name] = value
	return nil
}

func TestAnnotate(t *testing.T) {
	m, err := Classify("/get-started/react/es/testing/")
	require.NoError(t, err)

	node := &recordingNode{}
	require.NoError(t, Annotate(node, m))
	require.Len(t, node.names, 6)
	require.Equal(t, "Español", node.values[FieldLanguageName])
	require.Equal(t, "/get-started/react/es/testing/", node.values[FieldSlug])

	failing := &recordingNode{failOn: FieldFramework}
	require.Error(t, Annotate(failing, m))
}

func TestClassifier_ClassifyFile(t *testing.T) {
	paths := map[string]string{
		"a.md": "/get-started/react/en/introduction/",
		"b.md": "/broken/",
	}
	c := NewClassifier(func(file any) (string, error) {
		p, ok := paths[file.(string)]
		if !ok {
			return "", errors.New("no such file")
		}
		return p, nil
	})

	m, err := c.ClassifyFile("a.md")
	require.NoError(t, err)
	require.Equal(t, "introduction", m.Chapter)

	_, err = c.ClassifyFile("b.md")
	require.ErrorIs(t, err, ErrMalformedPath)

	_, err = c.ClassifyFile("missing.md")
	require.EqualError(t, err, "no such file")
}
