package recast

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeWrongType       = "wrong_type"
	CodeMissingValue    = "missing_value"
	CodeUnknownKey      = "unknown_key"
	CodeUnionMatch      = "union_match"
	CodeUnionAmbiguous  = "union_ambiguous"
	CodeUnresolvedRef   = "unresolved_reference"
	CodeTransformFailed = "transform_failed"
)

// Issue represents a single construction failure.
type Issue struct {
	Path    string // Dotted field path from the call root (empty at the root).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected shapes, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"int",
	// "value":"x"}) for i18n and observability.
	Params map[string]any
}

// Issues is a collection of construction errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Path == "" {
			b.WriteString(it.Code)
			continue
		}
		// e.g. wrong_type at user.address.street
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// PrefixPath rebases every issue carried by err under the given field name,
// building the dotted path from the call root as the error propagates
// outward. Paths recorded at an error's origin are always relative; each
// enclosing record frame prepends its own field name.
func PrefixPath(err error, name string) error {
	if err == nil {
		return nil
	}
	child, ok := AsIssues(err)
	if !ok {
		return Issues{Issue{Path: name, Code: CodeTransformFailed, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := name
		if it.Path != "" {
			p = name + "." + it.Path
		}
		out = append(out, Issue{Path: p, Code: it.Code, Message: it.Message, Hint: it.Hint, Cause: it.Cause, Params: it.Params})
	}
	return out
}
