// Package route derives routing metadata from handbook content paths.
//
// A content path has exactly four segments, in this order:
//
//	/<guide>/<framework>/<language>/<chapter>/
//
// Classify splits such a path into a Metadata record. The display name of the
// language comes from a fixed table; languages outside it have no display
// name (HasLanguageName is false) and no fallback is invented.
package route
