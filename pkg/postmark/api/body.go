package api

import (
	"errors"
	"fmt"
)

// BodyKind is the kind of a [Body].
type BodyKind int

const (
	// BodyKindText is a text-only body.
	BodyKindText = BodyKind(iota + 1)

	// BodyKindHTML is an HTML-only body.
	BodyKindHTML

	// BodyKindHTMLAndText is a body with both HTML and text variants.
	BodyKindHTMLAndText
)

// Body is the body of an email message or of a template, which is
// either text, HTML, or both.
//
// On the wire, the body is not a nested object. Its variants are
// flattened into the enclosing object as the TextBody and HtmlBody
// fields, and absent variants are omitted. Use [Body.Fields] and
// [BodyFields.Body] when encoding and decoding the enclosing object.
//
// The zero value has no variants and encodes no keys, so an object
// decoded without TextBody and HtmlBody encodes back without them.
// Use TextBody("") for an empty text body.
type Body struct {
	kind BodyKind
	text string
	html string
}

// TextBody returns a text-only [Body].
func TextBody(text string) Body {
	return Body{kind: BodyKindText, text: text}
}

// HTMLBody returns an HTML-only [Body].
func HTMLBody(html string) Body {
	return Body{kind: BodyKindHTML, html: html}
}

// HTMLAndTextBody returns a [Body] with both variants.
func HTMLAndTextBody(html, text string) Body {
	return Body{kind: BodyKindHTMLAndText, html: html, text: text}
}

// Kind returns the body kind, which is zero for the zero value.
func (b Body) Kind() BodyKind {
	return b.kind
}

// IsZero returns whether the body has no variants.
func (b Body) IsZero() bool {
	return b.kind == 0
}

// Text returns the text variant and whether it is present.
func (b Body) Text() (string, bool) {
	switch b.Kind() {
	case BodyKindText, BodyKindHTMLAndText:
		return b.text, true
	default:
		return "", false
	}
}

// HTML returns the HTML variant and whether it is present.
func (b Body) HTML() (string, bool) {
	switch b.Kind() {
	case BodyKindHTML, BodyKindHTMLAndText:
		return b.html, true
	default:
		return "", false
	}
}

// Equal returns whether two bodies have the same kind and content.
func (b Body) Equal(other Body) bool {
	return b.Kind() == other.Kind() && b.text == other.text && b.html == other.html
}

// String implements fmt.Stringer.
func (b Body) String() string {
	switch b.Kind() {
	case BodyKindHTML:
		return fmt.Sprintf("HtmlBody(%q)", b.html)
	case BodyKindHTMLAndText:
		return fmt.Sprintf("HtmlAndTextBody(%q, %q)", b.html, b.text)
	case BodyKindText:
		return fmt.Sprintf("TextBody(%q)", b.text)
	default:
		return "NoBody"
	}
}

// Fields returns the flattened wire representation of the body.
func (b Body) Fields() BodyFields {
	var fields BodyFields
	if html, ok := b.HTML(); ok {
		fields.HtmlBody = &html
	}
	if text, ok := b.Text(); ok {
		fields.TextBody = &text
	}
	return fields
}

// BodyFields is the flattened wire representation of a [Body]. Embed it
// into the anonymous struct used to encode or decode the enclosing object.
type BodyFields struct {
	HtmlBody *string `json:",omitempty"`
	TextBody *string `json:",omitempty"`
}

// ErrNoBody indicates that neither TextBody nor HtmlBody were present.
var ErrNoBody = errors.New("api: missing both TextBody and HtmlBody")

// Body converts the wire representation back to a [Body]. Without
// variants it returns the zero [Body] and [ErrNoBody].
func (f BodyFields) Body() (Body, error) {
	switch {
	case f.HtmlBody != nil && f.TextBody != nil:
		return HTMLAndTextBody(*f.HtmlBody, *f.TextBody), nil
	case f.HtmlBody != nil:
		return HTMLBody(*f.HtmlBody), nil
	case f.TextBody != nil:
		return TextBody(*f.TextBody), nil
	default:
		return Body{}, ErrNoBody
	}
}
