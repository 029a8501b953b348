// Package query reads classified route fields back from the content graph.
package query

import (
	"fmt"

	"git.home.luguber.info/inful/handbook/internal/content"
	"git.home.luguber.info/inful/handbook/internal/route"
)

// Site carries the site-level values the page emitter needs.
type Site struct {
	DefaultTranslation string
}

// AllPages returns the route metadata of every node in graph order. A node
// with a missing or non-string field fails the whole query.
func AllPages(g *content.Graph) ([]route.Metadata, error) {
	nodes := g.Nodes()
	out := make([]route.Metadata, 0, len(nodes))
	for _, n := range nodes {
		m, err := fromNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func fromNode(n *content.Node) (route.Metadata, error) {
	var (
		m   route.Metadata
		err error
	)
	get := func(name string) string {
		if err != nil {
			return ""
		}
		v, ok := n.Field(name)
		if !ok {
			err = fmt.Errorf("node %s: missing field %q", n.RelPath, name)
			return ""
		}
		s, ok := v.(string)
		if !ok {
			err = fmt.Errorf("node %s: field %q is %T, not string", n.RelPath, name, v)
		}
		return s
	}

	m.Guide = get(route.FieldGuide)
	m.Slug = get(route.FieldSlug)
	m.Framework = get(route.FieldFramework)
	m.Language = get(route.FieldLanguage)
	m.Chapter = get(route.FieldChapter)
	if err != nil {
		return route.Metadata{}, err
	}

	if v, ok := n.Field(route.FieldLanguageName); ok && v != nil {
		m.LanguageName, m.HasLanguageName = v.(string)
	}
	return m, nil
}
