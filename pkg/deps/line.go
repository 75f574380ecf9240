// Package deps implements the dependency-line classification and
// aggregation engine.
//
// Nodes declare dependencies as raw requirement-style lines. A line can be a
// commented-out entry, an embedded pip flag (e.g. --extra-index-url), a
// VCS-sourced dependency (a git+ URL or a "name @ source" spec), or an
// ordinary versioned package. [Classify] turns one raw line into a [Line];
// [Aggregate], [Inspect], and [ResolveWildcard] build collection-level
// statistics and query-time reports on top of that classification.
//
// Everything in this package is pure and side-effect free: functions never
// fail, never perform I/O, and only read the node set they are given. A
// malformed line or node degrades to the most conservative classification
// (skipped line, node without dependencies).
package deps

import "strings"

// Kind is the semantic category of a dependency line.
type Kind uint8

const (
	// KindOrdinary is a registry package, optionally version-constrained.
	KindOrdinary Kind = iota
	// KindComment is a line whose trimmed text starts with "#".
	KindComment
	// KindFlag is a pip command-line option embedded in the list ("--...").
	KindFlag
	// KindGitURL is a "git+..." dependency; each distinct URL is its own
	// package since no short name is derivable.
	KindGitURL
	// KindVCSAt is a "name @ source" style dependency.
	KindVCSAt
)

// String returns the kind label used in reports.
func (k Kind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindFlag:
		return "flag"
	case KindGitURL:
		return "git-url"
	case KindVCSAt:
		return "at-style"
	default:
		return "ordinary"
	}
}

// Line is the parse result of one raw dependency-list entry.
//
// Invariants: a line has exactly one Kind; Skip implies the line contributes
// to no aggregate; a comment line always has Skip set.
type Line struct {
	Raw      string // original text, untouched
	Cleaned  string // trimmed text with any inline "#comment" removed; empty for comments
	BaseName string // canonical version-free identifier; empty for comments, flags, blanks
	Kind     Kind
	Skip     bool // nothing remains after comment stripping
}

// IsComment reports whether the line is a pure comment.
func (l Line) IsComment() bool { return l.Kind == KindComment }

// IsFlag reports whether the line is a pip flag rather than a package.
func (l Line) IsFlag() bool { return l.Kind == KindFlag }

// IsVCS reports whether the line points at a version-control source.
func (l Line) IsVCS() bool { return l.Kind == KindGitURL || l.Kind == KindVCSAt }

// Version returns the version-specifier portion of the cleaned spec, or the
// "*" sentinel when the line carries no version constraint.
func (l Line) Version() string {
	if l.Kind != KindOrdinary || l.BaseName == "" {
		return "*"
	}
	if len(l.Cleaned) <= len(l.BaseName) {
		return "*"
	}
	if v := strings.TrimSpace(l.Cleaned[len(l.BaseName):]); v != "" {
		return v
	}
	return "*"
}

// Classify parses one raw dependency line.
//
// Precedence is strict: a leading "#" wins over everything (even a line that
// would also look like a flag), then a leading "--", then inline-comment
// stripping, then the VCS forms, and finally the ordinary form where the
// base name is the lowercased text before the first version-operator
// character (one of < > = ! ~). Extras brackets like pkg[extra] are not
// special-cased and remain part of the base name.
func Classify(raw string) Line {
	s := strings.TrimSpace(raw)
	line := Line{Raw: raw}

	if strings.HasPrefix(s, "#") {
		line.Kind = KindComment
		line.Skip = true
		return line
	}

	if strings.HasPrefix(s, "--") {
		line.Kind = KindFlag
		line.Cleaned = s
		return line
	}

	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if s == "" {
		line.Skip = true
		return line
	}
	line.Cleaned = s

	switch at := strings.Index(s, " @ "); {
	case strings.HasPrefix(s, "git+"):
		// The full URL, case preserved, is the identifier.
		line.Kind = KindGitURL
		line.BaseName = s
	case at >= 0:
		line.Kind = KindVCSAt
		line.BaseName = strings.ToLower(strings.TrimSpace(s[:at]))
	default:
		line.BaseName = baseName(s)
	}
	return line
}

// baseName lowercases spec and strips everything from the first
// version-operator character onward. This is a rough splitter, not a full
// requirement parser: it never rejects input.
func baseName(spec string) string {
	lower := strings.ToLower(spec)
	if i := strings.IndexAny(lower, "<>=!~"); i >= 0 {
		lower = lower[:i]
	}
	return strings.TrimSpace(lower)
}

// CommentBody re-classifies the content of a comment line (the text after
// the leading "#"). It returns the zero Line for non-comment input.
// Used to find dependencies that nodes carry only in commented-out form.
func CommentBody(l Line) Line {
	if !l.IsComment() {
		return Line{}
	}
	body := strings.TrimSpace(l.Raw)
	body = strings.TrimSpace(strings.TrimPrefix(body, "#"))
	return Classify(body)
}
