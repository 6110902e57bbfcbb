package owlxml

import "strings"

// CommentData is the structured content extracted from an rdfs:comment.
// OWL files converted from OBO hide term metadata in comments; Desc is the
// recovered definition text and Other carries everything else keyed by its
// clause name.
type CommentData struct {
	Desc  string
	Other map[string][]string
}

// ParseComment extracts structured metadata from an rdfs:comment. Lines
// are evaluated top to bottom, first match wins per line:
//
//  1. "Functional form:" captures the rest of the comment verbatim under
//     Other["functional form"] and stops scanning entirely.
//  2. "def:" sets Desc from the trimmed remainder; scanning continues, and
//     a def line is never overridden later.
//  3. A line containing ": " splits once on the first occurrence and the
//     value is appended to Other[key].
//  4. Anything else, while Desc is unset, captures the remainder of the
//     comment verbatim as Desc and stops.
//
// If Desc is still unset afterwards it falls back to Other["tempdef"] then
// Other["altdef"]; every consumed key is removed, so when both are present
// both disappear from Other and the altdef value wins. The precedence is a
// compatibility contract with existing converted files.
func ParseComment(comment string) CommentData {
	parsed := CommentData{}
	if comment == "" {
		return parsed
	}

	lines := strings.Split(comment, "\n")
	descSet := false

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "Functional form:") {
			parsed.setOther("functional form", strings.Join(lines[i:], "\n"))
			break
		}

		if strings.HasPrefix(line, "def:") {
			parsed.Desc = strings.TrimSpace(line[len("def:"):])
			descSet = true
			continue
		}

		if key, value, ok := strings.Cut(line, ": "); ok {
			parsed.setOther(strings.TrimSpace(key), strings.TrimSpace(value))
			continue
		}

		if !descSet {
			parsed.Desc = strings.Join(lines[i:], "\n")
			descSet = true
			break
		}
	}

	if !descSet && parsed.Other != nil {
		for _, fallback := range []string{"tempdef", "altdef"} {
			if values, ok := parsed.Other[fallback]; ok {
				parsed.Desc = strings.Join(values, "\n")
				delete(parsed.Other, fallback)
			}
		}
	}

	return parsed
}

func (c *CommentData) setOther(key, value string) {
	if c.Other == nil {
		c.Other = make(map[string][]string)
	}
	c.Other[key] = append(c.Other[key], value)
}

// update folds newly parsed comment data into accumulated data: the
// scalar Desc overwrites, list-valued Other keys append.
func (c *CommentData) update(in CommentData) {
	if in.Desc != "" {
		c.Desc = in.Desc
	}
	for key, values := range in.Other {
		for _, v := range values {
			c.setOther(key, v)
		}
	}
}
