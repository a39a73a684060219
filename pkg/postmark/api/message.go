package api

// Header is a custom header to include in a message.
type Header struct {
	Name  string
	Value string
}

// Attachment is a message attachment.
type Attachment struct {
	// Name is the file name.
	Name string

	// Content is the base64-encoded content.
	Content string

	// ContentType is the MIME type.
	ContentType string

	// ContentID is the OPTIONAL content ID for inline images
	// (e.g., cid:logo.png).
	ContentID string `json:",omitempty"`
}

// TrackLinks controls link tracking in a message.
type TrackLinks string

const (
	TrackLinksNone        = TrackLinks("None")
	TrackLinksHTMLAndText = TrackLinks("HtmlAndText")
	TrackLinksHTMLOnly    = TrackLinks("HtmlOnly")
	TrackLinksTextOnly    = TrackLinks("TextOnly")
)
