package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/handbook/internal/frontmatter"
	"git.home.luguber.info/inful/handbook/internal/logfields"
	"git.home.luguber.info/inful/handbook/internal/markdown"
	"github.com/google/uuid"
)

// nodeNamespace scopes node IDs so the same relative path always maps to
// the same ID.
var nodeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("handbook:content"))

// Discovery finds markdown chapters below Root.
type Discovery struct {
	Root string
}

// NewDiscovery creates a discovery rooted at root.
func NewDiscovery(root string) *Discovery {
	return &Discovery{Root: root}
}

// Discover walks Root and returns one node per markdown file, sorted by
// relative path. Hidden files and directories are skipped.
func (d *Discovery) Discover(ctx context.Context) ([]*Node, error) {
	info, err := os.Stat(d.Root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrContentRootMissing, d.Root)
	}

	var rels []string
	err = filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path != d.Root && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !isMarkdownFile(entry.Name()) {
			return nil
		}
		rel, err := filepath.Rel(d.Root, path)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", d.Root, err)
	}

	slices.Sort(rels)
	nodes := make([]*Node, 0, len(rels))
	for _, rel := range rels {
		n, err := d.load(rel)
		if err != nil {
			return nil, err
		}
		slog.Debug("Discovered chapter", logfields.Path(rel), slog.String("title", n.Title))
		nodes = append(nodes, n)
	}

	slog.Info("Content discovered", logfields.Count(len(nodes)), logfields.Path(d.Root))
	return nodes, nil
}

func (d *Discovery) load(rel string) (*Node, error) {
	abs := filepath.Join(d.Root, filepath.FromSlash(rel))
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadChapter, rel, err)
	}
	fields, body, err := frontmatter.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadChapter, rel, err)
	}

	n := NewNode(NodeID(rel), abs, rel)
	n.Frontmatter = fields
	n.Title = chapterTitle(fields, body)
	return n, nil
}

// NodeID returns the stable ID of the chapter at rel.
func NodeID(rel string) string {
	return uuid.NewSHA1(nodeNamespace, []byte(filepath.ToSlash(rel))).String()
}

func chapterTitle(fields map[string]any, body []byte) string {
	if t, ok := fields["title"].(string); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return markdown.FirstHeading(body)
}

func isMarkdownFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}
