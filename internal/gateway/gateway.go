package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Default model identifiers.
const (
	DefaultContentModel = "gemini-3-pro-preview"
	DefaultImageModel   = "gemini-2.5-flash-image"
)

// Options selects the models used for each operation.
type Options struct {
	ContentModel string
	ImageModel   string
}

// NewOptions returns the default model selection.
func NewOptions() Options {
	return Options{
		ContentModel: DefaultContentModel,
		ImageModel:   DefaultImageModel,
	}
}

// Gateway builds requests for the three operations and interprets replies.
type Gateway struct {
	model Model
	opts  Options
}

// New constructs a Gateway over a model backend. Empty option fields fall
// back to the defaults.
func New(model Model, opts Options) (*Gateway, error) {
	if model == nil {
		return nil, errors.New("nil model backend")
	}
	def := NewOptions()
	if opts.ContentModel == "" {
		opts.ContentModel = def.ContentModel
	}
	if opts.ImageModel == "" {
		opts.ImageModel = def.ImageModel
	}
	return &Gateway{model: model, opts: opts}, nil
}

// Options returns the effective model selection.
func (g *Gateway) Options() Options {
	return g.opts
}

func (g *Gateway) logger(ctx context.Context, op, model string) zerolog.Logger {
	return log.Ctx(ctx).With().
		Str("call_id", uuid.NewString()).
		Str("op", op).
		Str("model", model).
		Logger()
}

// GenerateContent asks for a marketing plan. When a link is given the model
// may search the web; the pages it used are returned in Sources.
func (g *Gateway) GenerateContent(ctx context.Context, in ContentInput) (*MarketingPlan, error) {
	req := &Request{
		Model:     g.opts.ContentModel,
		Parts:     []Part{{Text: contentPrompt(in)}},
		Schema:    PlanSchema(),
		WebSearch: in.Link != "",
	}
	if in.Image != nil {
		req.Parts = append(req.Parts, Part{Image: in.Image})
	}

	logger := g.logger(ctx, "content", req.Model)
	start := time.Now()
	reply, err := g.model.Generate(ctx, req)
	if err != nil {
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("content request failed")
		return nil, fmt.Errorf("content request failed: %w", err)
	}

	plan, err := ParsePlan(reply.Text)
	if err != nil {
		logger.Warn().Err(err).Int("reply_bytes", len(reply.Text)).Msg("content reply unreadable")
		return nil, err
	}

	plan.Sources = append([]string{}, reply.Sources...)
	logger.Info().
		Str("product", plan.ProductName).
		Int("sources", len(plan.Sources)).
		Dur("duration", time.Since(start)).
		Msg("content plan generated")
	return plan, nil
}

// GenerateProductVisual returns a studio-style product image as a data URI.
// With a source photo the product is kept and only the background replaced.
func (g *Gateway) GenerateProductVisual(ctx context.Context, productName string, source *InlineImage) (string, error) {
	var parts []Part
	if source != nil {
		parts = []Part{{Image: source}, {Text: reskinPrompt}}
	} else {
		parts = []Part{{Text: describePrompt(productName)}}
	}
	return g.generateImage(ctx, KindVisual, &Request{Model: g.opts.ImageModel, Parts: parts, WantImage: true})
}

// GenerateLogo returns a brand logo as a data URI.
func (g *Gateway) GenerateLogo(ctx context.Context, brandName string, style LogoStyle) (string, error) {
	req := &Request{
		Model:     g.opts.ImageModel,
		Parts:     []Part{{Text: logoPrompt(brandName, style)}},
		WantImage: true,
	}
	return g.generateImage(ctx, KindLogo, req)
}

func (g *Gateway) generateImage(ctx context.Context, kind string, req *Request) (string, error) {
	logger := g.logger(ctx, kind, req.Model)
	start := time.Now()

	reply, err := g.model.Generate(ctx, req)
	if err != nil {
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("image request failed")
		return "", fmt.Errorf("%s request failed: %w", kind, err)
	}

	img, ok := reply.FirstImage()
	if !ok {
		logger.Warn().Int("reply_bytes", len(reply.Text)).Msg("image reply carried no image")
		return "", &GenerationError{Kind: kind}
	}

	logger.Info().Int("bytes", len(img.Data)).Str("mime", img.MIMEType).Dur("duration", time.Since(start)).Msg("image generated")
	return DataURI(img), nil
}
