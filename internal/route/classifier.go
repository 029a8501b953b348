package route

// PathResolver derives the content path of a file handle.
type PathResolver func(file any) (string, error)

// Annotator receives derived fields for a content node.
type Annotator interface {
	CreateNodeField(name string, value any) error
}

// Classifier resolves a file to its content path and classifies it.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	resolve PathResolver
}

// NewClassifier returns a Classifier using resolve to derive paths.
func NewClassifier(resolve PathResolver) *Classifier {
	return &Classifier{resolve: resolve}
}

// ClassifyFile resolves the file path and classifies it.
func (c *Classifier) ClassifyFile(file any) (Metadata, error) {
	p, err := c.resolve(file)
	if err != nil {
		return Metadata{}, err
	}
	return Classify(p)
}

// Annotate attaches every derived field to node, one call per field.
func Annotate(node Annotator, m Metadata) error {
	for _, f := range m.Fields() {
		if err := node.CreateNodeField(f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}
