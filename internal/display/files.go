package display

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/khanglvm/marketing-support/internal/gateway"
)

// ValidationError reports a file that cannot be used as input.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// VisualFileName is the download name of a product visual.
func VisualFileName(productName string) string {
	return strings.ReplaceAll(productName, " ", "_") + ".png"
}

// LogoFileName is the download name of a logo.
func LogoFileName(brandName string) string {
	return brandName + "_logo.png"
}

// WriteDataURI decodes a base64 data URI and writes the bytes to path.
func WriteDataURI(dataURI, path string) error {
	img, err := gateway.ParseDataURI(dataURI)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, img.Data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadImage reads a product photo. Files whose type is not image/* are rejected.
//
// The type comes from the file extension, falling back to content sniffing.
func LoadImage(path string) (*gateway.InlineImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) == 0 {
		return nil, &ValidationError{Path: path, Message: "file is empty"}
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, &ValidationError{Path: path, Message: fmt.Sprintf("not an image (%s)", mimeType)}
	}

	return &gateway.InlineImage{Data: data, MIMEType: mimeType}, nil
}
