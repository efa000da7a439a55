package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

const (
	symsrvPrefix = "symsrv*"
	cachePrefix  = "cache*"
)

// ParseSearchPath parses a symbol path string into a spec.
//
// Elements are separated by ';' on every platform, because drive letters and
// URLs carry ':'. Recognized forms are plain directories, SRV*server,
// SRV*mirror*server, symsrv*dll*mirror*server and cache*dir. Fragments that
// cannot be parsed are dropped and returned as warnings.
func ParseSearchPath(raw string) (SearchPathSpec, []Warning) {
	var (
		spec     SearchPathSpec
		warnings []Warning
	)

	for _, fragment := range strings.Split(raw, ";") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		elem, err := ParseElement(fragment)
		if err != nil {
			warnings = append(warnings, Warning{Cause: fragment, Err: err})
			continue
		}
		spec.Append(elem)
	}

	return spec, warnings
}

// Warning is a non-fatal configuration problem. Cause identifies the
// problem so it can be reported once however often it recurs.
type Warning struct {
	Cause string
	Err   error
}

// String renders the warning for the operator.
func (w Warning) String() string {
	return w.Err.Error() + " (" + w.Cause + ")"
}

// ParseElement parses a single symbol path fragment.
func ParseElement(fragment string) (PathElement, error) {
	malformed := zerr.With(ErrMalformedPathElement, "fragment", fragment)

	if strings.ContainsRune(fragment, 0) {
		return PathElement{}, malformed
	}

	lower := strings.ToLower(fragment)
	switch {
	case strings.HasPrefix(lower, strings.ToLower(srvPrefix)):
		return parseRepository(fragment[len(srvPrefix):], malformed)
	case strings.HasPrefix(lower, symsrvPrefix):
		// symsrv*<dll>*<mirror>*<server>: the dll name is irrelevant here.
		rest := fragment[len(symsrvPrefix):]
		_, tail, ok := strings.Cut(rest, "*")
		if !ok {
			return PathElement{}, malformed
		}
		return parseRepository(tail, malformed)
	case strings.HasPrefix(lower, cachePrefix):
		dir := strings.TrimSpace(fragment[len(cachePrefix):])
		if dir == "" || strings.Contains(dir, "*") {
			return PathElement{}, malformed
		}
		return NewRemoteRepository("", dir), nil
	case strings.Contains(fragment, "*"):
		return PathElement{}, malformed
	default:
		return NewLocalDirectory(fragment), nil
	}
}

func parseRepository(body string, malformed error) (PathElement, error) {
	parts := strings.Split(body, "*")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return PathElement{}, malformed
		}
		return NewRemoteRepository(parts[0], ""), nil
	case 2:
		mirror, server := parts[0], parts[1]
		if mirror == "" && server == "" {
			return PathElement{}, malformed
		}
		return NewRemoteRepository(server, mirror), nil
	default:
		return PathElement{}, malformed
	}
}
