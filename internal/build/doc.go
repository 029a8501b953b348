// Package build runs the handbook build: discover chapters, let plugins
// annotate every node, create pages, then publish. All entry points (build,
// routes, watch) go through Builder.
package build
