// Package method defines the data model shared by the similarity engine:
// extractor output (Info), method records, parsed files, and the extractor
// interface the core consumes but does not implement.
package method

import (
	"sync"

	"github.com/dupscan/dupscan/internal/structural"
	"github.com/dupscan/dupscan/pkg/tree"
)

// Info is what an [Extractor] emits for one declaration with a body: a
// method, a constructor, a local function, or a property accessor.
// Different declaration categories map onto this single tagged-variant
// struct rather than a type hierarchy — ClassContext and NameSuffix are
// enough to disambiguate them downstream (report rendering, full-name
// construction) without the engine needing to know which one it's
// looking at.
type Info struct {
	Name         string
	ClassContext string // owning type name; empty for free functions.
	NameSuffix   string // e.g. "ctor", "get", "set", "local"; empty for plain methods.
	FilePath     string
	StartLine    int
	EndLine      int
	Params       []string
	Async        bool
	Concurrent   bool // supplements Async for languages (Go) with no async keyword.
	Attributes   []string
	Tree         *tree.Node
}

// FullName returns the class-qualified name when ClassContext is set,
// optionally disambiguated by NameSuffix.
func (i Info) FullName() string {
	name := i.Name
	if i.NameSuffix != "" {
		name += "#" + i.NameSuffix
	}

	if i.ClassContext == "" {
		return name
	}

	return i.ClassContext + "." + name
}

// Record is an immutable method record, owned exclusively by the
// [File] that produced it. The detector borrows records by pointer but
// never mutates or takes ownership of them.
type Record struct {
	Name       string
	FullName   string
	FilePath   string
	StartLine  int
	EndLine    int
	LineCount  int
	TokenCount int
	Tree       *tree.Node
	Fingerprint Fingerprint

	structuralOnce sync.Once
	structural     *structural.Features
}

// Fingerprint is the minimal interface the engine needs from a method's
// cheap admission summary. internal/fingerprint.Fingerprint implements it;
// it is re-declared here (rather than imported as a concrete type) so that
// pkg/method has no dependency on internal/fingerprint's construction
// details, only on what internal/detector actually calls.
type Fingerprint interface {
	MightBeSimilar(other Fingerprint, tau float64) bool
}

// NewRecord builds an immutable method record from extractor output. The
// fingerprint must already have been computed by the caller (ingestion is
// where fingerprints are built, once, per spec §3's lifecycle rule).
func NewRecord(info Info, fp Fingerprint) *Record {
	lineCount := info.EndLine - info.StartLine + 1
	if lineCount < 0 {
		lineCount = 0
	}

	tokenCount := 0
	if info.Tree != nil {
		tokenCount = info.Tree.Size()
	}

	return &Record{
		Name:        info.Name,
		FullName:    info.FullName(),
		FilePath:    info.FilePath,
		StartLine:   info.StartLine,
		EndLine:     info.EndLine,
		LineCount:   lineCount,
		TokenCount:  tokenCount,
		Tree:        info.Tree,
		Fingerprint: fp,
	}
}

// Structural returns the method's structural features, computing and
// memoizing them on first use via structuralFn. Passing the analyzer in
// (rather than importing internal/structural directly as the sole
// implementation) keeps Record decoupled from the analyzer's
// construction, while still only ever computing features once per method
// as required by spec §3 ("computed at most once per method, memoized").
func (r *Record) Structural(analyze func(*tree.Node) *structural.Features) *structural.Features {
	r.structuralOnce.Do(func() {
		r.structural = analyze(r.Tree)
	})

	return r.structural
}

// File is a single source file's parsed output: a path plus its ordered
// methods. Methods within a file share no state; File exclusively owns
// its Methods slice and their Records.
type File struct {
	Path    string
	Methods []*Record
}
