package templates

// TemplateType is the type of a template.
type TemplateType string

const (
	// TemplateTypeStandard is a template used to render messages.
	TemplateTypeStandard = TemplateType("Standard")

	// TemplateTypeLayout is a template wrapping standard templates.
	TemplateTypeLayout = TemplateType("Layout")

	// TemplateTypeAll selects every type when listing.
	TemplateTypeAll = TemplateType("All")
)

// TemplateAction is what pushing did with a template.
type TemplateAction string

const (
	TemplateActionCreate = TemplateAction("Create")
	TemplateActionEdit   = TemplateAction("Edit")
)

// TemplateInfo summarizes a template.
type TemplateInfo struct {
	TemplateID     int64        `json:"TemplateId"`
	Name           string       `json:",omitempty"`
	Alias          string       `json:",omitempty"`
	Active         bool         `json:",omitempty"`
	TemplateType   TemplateType `json:",omitempty"`
	LayoutTemplate string       `json:",omitempty"`
}
