package method

// Extractor is the external collaborator the similarity engine consumes
// but never implements (spec §4.8 / §1's "out of scope" list). Given a
// source path, it must emit every method, constructor, local function, and
// property accessor with a body, each already lowered to the engine's
// neutral tree per the block-unwrap normalization in pkg/tree.
//
// Extract must not mutate anything it returns after returning it: method
// records built from its output are immutable per spec §3.
type Extractor interface {
	// Extract parses path and returns one Info per extractable
	// declaration. A parse failure for the whole file is returned as an
	// error; the caller is responsible for logging it and continuing
	// (spec §7's "per-file errors are recovered locally").
	Extract(path string) ([]Info, error)

	// Extensions lists the file extensions (with leading dot, e.g. ".go")
	// this extractor can parse. Used by host-side file discovery to skip
	// files before ever calling Extract.
	Extensions() []string
}
