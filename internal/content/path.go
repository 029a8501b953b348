package content

import (
	"path"
	"path/filepath"
	"strings"
)

// FilePath derives the route path of a file from its path relative to the
// content root: the extension is dropped, an index file stands for its
// directory, and the result starts and ends with "/".
//
//	get-started/react/en/introduction.md       -> /get-started/react/en/introduction/
//	get-started/react/en/introduction/index.md -> /get-started/react/en/introduction/
func FilePath(relPath string) string {
	rel := filepath.ToSlash(relPath)
	dir, file := path.Split(rel)
	name := strings.TrimSuffix(file, path.Ext(file))
	if name == "index" {
		name = ""
	}

	p := path.Join("/", dir, name)
	if p == "/" {
		return p
	}
	return p + "/"
}

// ResolvePath derives the route path of a *Node. It matches the
// route.PathResolver signature.
func ResolvePath(file any) (string, error) {
	n, ok := file.(*Node)
	if !ok {
		return "", errNotANode(file)
	}
	return FilePath(n.RelPath), nil
}
