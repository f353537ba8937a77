/*
Package gateway talks to the hosted generative model.

It builds the request for each of the three operations (content plan, product
visual, logo), sends it through a Model backend and interprets the reply: the
content plan is parsed from free text with a two-stage JSON parser, images are
returned as data URIs.

None of the operations retry. The caller owns any retry policy.
*/
package gateway

import (
	"fmt"
	"strings"
)

// MarketingPlan is the structured content produced for one product.
type MarketingPlan struct {
	ProductName           string   `json:"productName"`
	PostCaption           string   `json:"postCaption"`
	Hashtags              []string `json:"hashtags"`
	PostingTimeSuggestion string   `json:"postingTimeSuggestion"`
	StrategyAdvice        string   `json:"strategyAdvice"`
	VideoScript           string   `json:"videoScript"`
	Sources               []string `json:"sources,omitempty"`
}

// Placeholders shown while a field has no content.
const (
	PlaceholderProductName = "Product"
	PlaceholderCaption     = "The caption is still being written by the AI..."
	PlaceholderStrategy    = "Strategy tips are still being prepared..."
	PlaceholderPostingTime = "Anytime"
	PlaceholderVideoScript = "The video script is still being generated..."
)

// Normalize fills every empty field with its placeholder and replaces nil
// slices with empty ones. It is idempotent.
func (p *MarketingPlan) Normalize() {
	p.ProductName = orDefault(p.ProductName, PlaceholderProductName)
	p.PostCaption = orDefault(p.PostCaption, PlaceholderCaption)
	p.PostingTimeSuggestion = orDefault(p.PostingTimeSuggestion, PlaceholderPostingTime)
	p.StrategyAdvice = orDefault(p.StrategyAdvice, PlaceholderStrategy)
	p.VideoScript = orDefault(p.VideoScript, PlaceholderVideoScript)
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	if p.Sources == nil {
		p.Sources = []string{}
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// InlineImage is an image carried directly in a request or reply.
type InlineImage struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mimeType"`
}

// ContentInput is the user's product description. At least one of Link and
// Image must be set; the caller enforces that.
type ContentInput struct {
	Link  string       `json:"link,omitempty"`
	Image *InlineImage `json:"image,omitempty"`
	Price string       `json:"price,omitempty"`
	Phone string       `json:"phone,omitempty"`
}

// Empty reports whether neither a link nor an image was supplied.
func (in ContentInput) Empty() bool {
	return strings.TrimSpace(in.Link) == "" && in.Image == nil
}

// LogoStyle selects the visual direction of a generated logo.
type LogoStyle string

const (
	StyleModern     LogoStyle = "modern"
	StyleMinimalist LogoStyle = "minimalist"
	StyleLuxury     LogoStyle = "luxury"
	StyleColorful   LogoStyle = "colorful"
	StyleVintage    LogoStyle = "vintage"
)

// LogoStyles lists the accepted styles in menu order.
var LogoStyles = []LogoStyle{StyleModern, StyleMinimalist, StyleLuxury, StyleColorful, StyleVintage}

// ParseLogoStyle accepts a style name case-insensitively.
func ParseLogoStyle(s string) (LogoStyle, error) {
	want := LogoStyle(strings.ToLower(strings.TrimSpace(s)))
	for _, style := range LogoStyles {
		if style == want {
			return style, nil
		}
	}
	return "", fmt.Errorf("unknown logo style %q (use modern, minimalist, luxury, colorful or vintage)", s)
}
