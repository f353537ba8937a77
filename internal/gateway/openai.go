package gateway

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/khanglvm/marketing-support/internal/version"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIModel is a Model for OpenAI-compatible endpoints. It has no web
// search tool, so plans from this backend carry no sources.
type OpenAIModel struct {
	client openai.Client
}

// NewOpenAIModel creates an OpenAI backend. An empty baseURL uses the
// library default.
func NewOpenAIModel(apiKey, baseURL string) (*OpenAIModel, error) {
	if apiKey == "" {
		return nil, errors.New("empty API key")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHeader("User-Agent", version.UserAgent()),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIModel{client: openai.NewClient(opts...)}, nil
}

// Generate implements Model.
func (m *OpenAIModel) Generate(ctx context.Context, req *Request) (*Reply, error) {
	if req.WantImage {
		return m.generateImage(ctx, req)
	}
	return m.complete(ctx, req)
}

func (m *OpenAIModel) complete(ctx context.Context, req *Request) (*Reply, error) {
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.Image != nil {
			parts = append(parts, openai.ChatCompletionContentPartUnionParam{
				OfImageURL: &openai.ChatCompletionContentPartImageParam{
					ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
						URL:    DataURI(*p.Image),
						Detail: "auto",
					},
				},
			})
			continue
		}
		parts = append(parts, openai.ChatCompletionContentPartUnionParam{
			OfText: &openai.ChatCompletionContentPartTextParam{Text: p.Text},
		})
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.Schema != nil {
		messages = append(messages, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(schemaInstruction(req.Schema)),
				},
			},
		})
	}
	messages = append(messages, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: parts,
			},
		},
	})

	response, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	reply := &Reply{}
	if len(response.Choices) > 0 {
		reply.Text = response.Choices[0].Message.Content
	}
	return reply, nil
}

func (m *OpenAIModel) generateImage(ctx context.Context, req *Request) (*Reply, error) {
	var prompt []string
	for _, p := range req.Parts {
		if p.Image != nil {
			return nil, errors.New("openai backend cannot restyle a source photo; generate without --photo or use the gemini backend")
		}
		prompt = append(prompt, strings.TrimSpace(p.Text))
	}

	response, err := m.client.Images.Generate(ctx, imageParams(req.Model, strings.Join(prompt, "\n")))
	if err != nil {
		return nil, fmt.Errorf("openai image request failed: %w", err)
	}

	reply := &Reply{}
	for _, img := range response.Data {
		if img.B64JSON == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode image payload: %w", err)
		}
		reply.Images = append(reply.Images, InlineImage{Data: data, MIMEType: defaultImageMIME})
	}
	return reply, nil
}

// imageParams asks for one base64 image. dall-e models default to URLs and
// need response_format; gpt-image models always return base64 and reject it.
func imageParams(model, prompt string) openai.ImageGenerateParams {
	params := openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(model),
		N:      openai.Int(1),
	}
	if strings.HasPrefix(strings.ToLower(model), "dall-e") {
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormatB64JSON
	}
	return params
}

// schemaInstruction describes an object schema in words for backends without
// structured output.
func schemaInstruction(s *Schema) string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]string, 0, len(names))
	for _, name := range names {
		prop := s.Properties[name]
		kind := string(prop.Type)
		if prop.Type == TypeArray && prop.Items != nil {
			kind = "array of " + string(prop.Items.Type)
		}
		fields = append(fields, fmt.Sprintf("%q (%s)", name, kind))
	}
	return "Reply ONLY with one valid JSON object with these fields: " + strings.Join(fields, ", ") + ". No prose, no markdown."
}
