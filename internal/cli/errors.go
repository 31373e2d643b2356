package cli

import (
	"fmt"
	"strings"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type ambiguousError struct {
	kind    string
	ref     string
	matches []string
}

func (e ambiguousError) Error() string {
	return fmt.Sprintf("%s reference %q is ambiguous: %s", e.kind, e.ref, strings.Join(e.matches, ", "))
}

func errAmbiguous(kind, ref string, matches []string) error {
	return ambiguousError{kind: kind, ref: ref, matches: matches}
}
