package gateway

import "context"

// Model is the remote generative model boundary.
type Model interface {
	Generate(ctx context.Context, req *Request) (*Reply, error)
}

// Part is one piece of request content: text or an inline image.
type Part struct {
	Text  string
	Image *InlineImage
}

// SchemaType names a JSON schema node type.
type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeArray  SchemaType = "array"
	TypeString SchemaType = "string"
)

// Schema is the declared shape of a JSON reply.
type Schema struct {
	Type       SchemaType
	Properties map[string]*Schema
	Items      *Schema
	Required   []string
}

// Request is a single model invocation.
type Request struct {
	Model string
	Parts []Part

	// Schema, when set, asks for a JSON reply of that shape.
	Schema *Schema

	// WebSearch lets the model consult web pages and report them as sources.
	WebSearch bool

	// WantImage marks requests whose useful output is an image.
	WantImage bool
}

// Reply is what a backend extracted from the model's response.
type Reply struct {
	Text    string
	Images  []InlineImage
	Sources []string
}

// FirstImage returns the first non-empty inline image.
func (r *Reply) FirstImage() (InlineImage, bool) {
	if r == nil {
		return InlineImage{}, false
	}
	for _, img := range r.Images {
		if len(img.Data) > 0 {
			return img, true
		}
	}
	return InlineImage{}, false
}

// PlanSchema is the reply schema for GenerateContent.
func PlanSchema() *Schema {
	str := func() *Schema { return &Schema{Type: TypeString} }
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"productName":           str(),
			"postCaption":           str(),
			"hashtags":              {Type: TypeArray, Items: str()},
			"postingTimeSuggestion": str(),
			"strategyAdvice":        str(),
			"videoScript":           str(),
		},
		Required: []string{"productName", "postCaption", "hashtags", "postingTimeSuggestion", "strategyAdvice", "videoScript"},
	}
}
