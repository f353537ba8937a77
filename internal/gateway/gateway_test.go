package gateway_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/khanglvm/marketing-support/internal/gateway"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	mu       sync.Mutex
	requests []*gateway.Request
	reply    *gateway.Reply
	err      error
}

func (f *fakeModel) Generate(_ context.Context, req *gateway.Request) (*gateway.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func (f *fakeModel) last() *gateway.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newGateway(t *testing.T, m gateway.Model) *gateway.Gateway {
	t.Helper()
	g, err := gateway.New(m, gateway.Options{})
	require.NoError(t, err)
	return g
}

func TestNewRejectsNilModel(t *testing.T) {
	_, err := gateway.New(nil, gateway.NewOptions())
	require.Error(t, err)
}

func TestNewFillsDefaults(t *testing.T) {
	g, err := gateway.New(&fakeModel{}, gateway.Options{ImageModel: "img-x"})
	require.NoError(t, err)
	require.Equal(t, gateway.DefaultContentModel, g.Options().ContentModel)
	require.Equal(t, "img-x", g.Options().ImageModel)
}

func TestGenerateContentWithLink(t *testing.T) {
	model := &fakeModel{reply: &gateway.Reply{
		Text:    "```json\n" + widgetJSON + "\n```",
		Sources: []string{"https://www.amazon.com/x"},
	}}
	g := newGateway(t, model)

	plan, err := g.GenerateContent(context.Background(), gateway.ContentInput{
		Link:  "amazon.com/x",
		Price: "5000",
		Phone: "09123456",
	})
	require.NoError(t, err)
	require.Equal(t, "Widget", plan.ProductName)
	require.Equal(t, []string{"https://www.amazon.com/x"}, plan.Sources)

	req := model.last()
	require.Equal(t, gateway.DefaultContentModel, req.Model)
	require.True(t, req.WebSearch)
	require.NotNil(t, req.Schema)
	require.Len(t, req.Schema.Required, 6)
	require.Len(t, req.Parts, 1)
	require.Contains(t, req.Parts[0].Text, "amazon.com/x")
	require.Contains(t, req.Parts[0].Text, "Price(5000)")
	require.Contains(t, req.Parts[0].Text, "Phone(09123456)")
}

func TestGenerateContentWithImage(t *testing.T) {
	model := &fakeModel{reply: &gateway.Reply{Text: widgetJSON}}
	g := newGateway(t, model)

	img := &gateway.InlineImage{Data: []byte{0x89, 'P', 'N', 'G'}, MIMEType: "image/png"}
	plan, err := g.GenerateContent(context.Background(), gateway.ContentInput{Image: img})
	require.NoError(t, err)
	require.Empty(t, plan.Sources)

	req := model.last()
	require.False(t, req.WebSearch)
	require.Len(t, req.Parts, 2)
	require.Contains(t, req.Parts[0].Text, "this product image")
	require.Contains(t, req.Parts[0].Text, "Price(Not Set)")
	require.Same(t, img, req.Parts[1].Image)
}

func TestGenerateContentErrors(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := newGateway(t, &fakeModel{err: boom}).GenerateContent(context.Background(), gateway.ContentInput{Link: "x"})
	require.ErrorIs(t, err, boom)

	_, err = newGateway(t, &fakeModel{reply: &gateway.Reply{Text: "sorry"}}).GenerateContent(context.Background(), gateway.ContentInput{Link: "x"})
	var fe *gateway.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestGenerateProductVisualModes(t *testing.T) {
	png := gateway.InlineImage{Data: []byte("img"), MIMEType: "image/png"}
	model := &fakeModel{reply: &gateway.Reply{Images: []gateway.InlineImage{png}}}
	g := newGateway(t, model)

	uri, err := g.GenerateProductVisual(context.Background(), "Widget", nil)
	require.NoError(t, err)
	require.Equal(t, gateway.DataURI(png), uri)

	req := model.last()
	require.Equal(t, gateway.DefaultImageModel, req.Model)
	require.True(t, req.WantImage)
	require.Len(t, req.Parts, 1)
	require.Contains(t, req.Parts[0].Text, `"Widget"`)

	source := &gateway.InlineImage{Data: []byte("photo"), MIMEType: "image/jpeg"}
	_, err = g.GenerateProductVisual(context.Background(), "Widget", source)
	require.NoError(t, err)

	req = model.last()
	require.Len(t, req.Parts, 2)
	require.Same(t, source, req.Parts[0].Image)
	require.Contains(t, req.Parts[1].Text, "Keep the central product")
}

func TestGenerateImageWithoutPayload(t *testing.T) {
	model := &fakeModel{reply: &gateway.Reply{Text: "I cannot draw that", Images: []gateway.InlineImage{{}}}}
	g := newGateway(t, model)

	_, err := g.GenerateLogo(context.Background(), "Acme", gateway.StyleLuxury)
	var ge *gateway.GenerationError
	require.ErrorAs(t, err, &ge)
	require.Equal(t, gateway.KindLogo, ge.Kind)
	require.Contains(t, model.last().Parts[0].Text, "Style: luxury")

	_, err = g.GenerateProductVisual(context.Background(), "Widget", nil)
	require.ErrorAs(t, err, &ge)
	require.Equal(t, gateway.KindVisual, ge.Kind)
}

func TestDataURIRoundTrip(t *testing.T) {
	img := gateway.InlineImage{Data: []byte{1, 2, 3, 250}, MIMEType: "image/webp"}
	uri := gateway.DataURI(img)
	require.True(t, strings.HasPrefix(uri, "data:image/webp;base64,"))

	back, err := gateway.ParseDataURI(uri)
	require.NoError(t, err)
	require.Equal(t, img, back)

	require.True(t, strings.HasPrefix(gateway.DataURI(gateway.InlineImage{Data: []byte{1}}), "data:image/png;base64,"))

	for _, bad := range []string{"http://x/y.png", "data:image/png;base64", "data:image/png,abc", "data:image/png;base64,@@@"} {
		_, err := gateway.ParseDataURI(bad)
		require.Error(t, err, bad)
	}
}

func TestParseLogoStyle(t *testing.T) {
	style, err := gateway.ParseLogoStyle(" Vintage ")
	require.NoError(t, err)
	require.Equal(t, gateway.StyleVintage, style)

	_, err = gateway.ParseLogoStyle("gothic")
	require.Error(t, err)
}

func TestContentInputEmpty(t *testing.T) {
	require.True(t, gateway.ContentInput{Price: "5"}.Empty())
	require.True(t, gateway.ContentInput{Link: "   "}.Empty())
	require.False(t, gateway.ContentInput{Link: "amazon.com/x"}.Empty())
	require.False(t, gateway.ContentInput{Image: &gateway.InlineImage{}}.Empty())
}
