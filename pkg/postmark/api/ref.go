package api

import "strconv"

// Ref identifies a resource embedded into an endpoint path either by
// its numeric ID or by a string (an alias or a name).
type Ref struct {
	id     int64
	name   string
	byName bool
}

// RefID returns a [Ref] using a numeric ID.
func RefID(id int64) Ref {
	return Ref{id: id}
}

// RefName returns a [Ref] using an alias or a name.
func RefName(name string) Ref {
	return Ref{name: name, byName: true}
}

// ID returns the numeric ID and whether the [Ref] uses a numeric ID.
func (r Ref) ID() (int64, bool) {
	return r.id, !r.byName
}

// Name returns the alias or name and whether the [Ref] uses one.
func (r Ref) Name() (string, bool) {
	return r.name, r.byName
}

// String renders numeric IDs in decimal and names verbatim. Callers
// building a path must escape the result with url.PathEscape.
func (r Ref) String() string {
	if r.byName {
		return r.name
	}
	return strconv.FormatInt(r.id, 10)
}

// Equal returns whether two refs identify the same resource in the same way.
func (r Ref) Equal(other Ref) bool {
	return r == other
}

// ParseRef returns a numeric [Ref] when s is a decimal integer and a
// named [Ref] otherwise.
func ParseRef(s string) Ref {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return RefID(id)
	}
	return RefName(s)
}
