// Package curie normalizes ontology accessions between their URI, legacy
// underscore, and compact PREFIX:LOCAL forms, and expands prefixed names
// against document namespace bindings.
package curie

import (
	"fmt"
	"strings"
)

// UnknownPrefixError reports a prefixed name whose prefix has no binding.
// It is fatal to the element being classified, not to its siblings.
type UnknownPrefixError struct {
	Prefix string
	Name   string
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("unknown namespace prefix %q in %q", e.Prefix, e.Name)
}

// FormatAccession canonicalizes a raw identifier or URI to PREFIX:LOCAL
// short form. Every bound namespace URI is removed from the accession, not
// just a leading one, so an accession embedding several bound URIs reduces
// fully. Accessions containing an underscore then have the first one
// replaced with a colon (the legacy OBO PURL convention), unless the
// accession starts with an underscore, which marks a blank node and passes
// through untouched.
//
// FormatAccession is total and idempotent: malformed input comes back
// best-effort, never as an error.
func FormatAccession(accession string, nsmap map[string]string) string {
	for _, uri := range nsmap {
		if uri != "" {
			accession = strings.ReplaceAll(accession, uri, "")
		}
	}

	if !strings.HasPrefix(accession, "_") {
		accession = strings.Replace(accession, "_", ":", 1)
	}

	return accession
}

// ExplicitNamespace expands a prefix:local name to {URI}local form against
// the given bindings. The braced spelling matches how encoding/xml reports
// resolved element and attribute names, so expanded names can be compared
// against token names directly.
func ExplicitNamespace(name string, nsmap map[string]string) (string, error) {
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return "", &UnknownPrefixError{Name: name}
	}
	uri, bound := nsmap[prefix]
	if !bound {
		return "", &UnknownPrefixError{Prefix: prefix, Name: name}
	}
	return "{" + uri + "}" + local, nil
}
