package content

import (
	"errors"
	"fmt"
)

var (
	// ErrContentRootMissing indicates the configured content directory does not exist.
	ErrContentRootMissing = errors.New("content root not found")
	// ErrReadChapter indicates a chapter file could not be read or parsed.
	ErrReadChapter = errors.New("failed to read chapter")
)

func errNotANode(v any) error {
	return fmt.Errorf("content: expected *content.Node, got %T", v)
}
