package gateway

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const defaultImageMIME = "image/png"

// DataURI encodes an image as a base64 data URI.
func DataURI(img InlineImage) string {
	mime := img.MIMEType
	if mime == "" {
		mime = defaultImageMIME
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// ParseDataURI decodes a base64 data URI produced by DataURI.
func ParseDataURI(uri string) (InlineImage, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return InlineImage{}, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return InlineImage{}, errors.New("data URI has no payload")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return InlineImage{}, errors.New("data URI is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return InlineImage{}, fmt.Errorf("decode data URI: %w", err)
	}
	if mime == "" {
		mime = defaultImageMIME
	}
	return InlineImage{Data: data, MIMEType: mime}, nil
}
