package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/khanglvm/marketing-support/internal/version"
	"google.golang.org/genai"
)

// GeminiModel is a Model backed by the Gemini API.
type GeminiModel struct {
	client *genai.Client
}

// NewGeminiModel creates a Gemini backend. httpClient may be nil.
func NewGeminiModel(ctx context.Context, apiKey string, httpClient *http.Client) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("empty API key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			Headers: http.Header{"User-Agent": []string{version.UserAgent()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client init failed: %w", err)
	}

	return &GeminiModel{client: client}, nil
}

// Generate implements Model.
func (m *GeminiModel) Generate(ctx context.Context, req *Request) (*Reply, error) {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.Image != nil {
			parts = append(parts, &genai.Part{InlineData: &genai.Blob{Data: p.Image.Data, MIMEType: p.Image.MIMEType}})
			continue
		}
		parts = append(parts, &genai.Part{Text: p.Text})
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	cfg := &genai.GenerateContentConfig{}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGenaiSchema(req.Schema)
	}
	if req.WebSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := m.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return nil, err
	}

	return replyFromGenai(resp), nil
}

func replyFromGenai(resp *genai.GenerateContentResponse) *Reply {
	reply := &Reply{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return reply
	}
	cand := resp.Candidates[0]

	var text strings.Builder
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p == nil {
				continue
			}
			if p.InlineData != nil {
				reply.Images = append(reply.Images, InlineImage{Data: p.InlineData.Data, MIMEType: p.InlineData.MIMEType})
				continue
			}
			text.WriteString(p.Text)
		}
	}
	reply.Text = text.String()

	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk != nil && chunk.Web != nil && chunk.Web.URI != "" {
				reply.Sources = append(reply.Sources, chunk.Web.URI)
			}
		}
	}

	return reply
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{Required: s.Required}
	switch s.Type {
	case TypeObject:
		out.Type = genai.TypeObject
	case TypeArray:
		out.Type = genai.TypeArray
	default:
		out.Type = genai.TypeString
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	out.Items = toGenaiSchema(s.Items)
	return out
}
