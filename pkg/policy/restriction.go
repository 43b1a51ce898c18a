package policy

// Restriction holds at most one restrictive policy document. The IAM
// simulation API accepts only a single permissions boundary input, so the
// present/absent distinction is kept structural rather than using a nil
// pointer. The zero value is absent.
type Restriction struct {
	doc     Document
	present bool
}

// Restrict wraps a merged restrictive document.
func Restrict(d Document) Restriction {
	return Restriction{doc: d, present: true}
}

// Document returns the restrictive document if one is present.
func (r Restriction) Document() (Document, bool) {
	return r.doc, r.present
}

// Present reports whether a restrictive document exists.
func (r Restriction) Present() bool {
	return r.present
}
