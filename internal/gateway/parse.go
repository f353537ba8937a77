package gateway

import (
	"encoding/json"
	"errors"
	"strings"
)

var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

var errNotObject = errors.New("reply is not a JSON object")

// StripFences is the first parsing stage: it removes markdown code-fence
// markers anywhere in the text and trims surrounding space.
func StripFences(text string) string {
	return strings.TrimSpace(fenceReplacer.Replace(text))
}

// SliceBraces is the fallback stage: it returns the text from the first '{'
// through the last '}'. ok is false when there is no such pair.
func SliceBraces(text string) (string, bool) {
	open := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if open == -1 || end == -1 || end < open {
		return "", false
	}
	return text[open : end+1], true
}

// planReply mirrors MarketingPlan with every field optional. Fields stay raw
// so one value of an unexpected type does not sink the whole reply.
type planReply struct {
	ProductName           json.RawMessage `json:"productName"`
	PostCaption           json.RawMessage `json:"postCaption"`
	Hashtags              json.RawMessage `json:"hashtags"`
	PostingTimeSuggestion json.RawMessage `json:"postingTimeSuggestion"`
	StrategyAdvice        json.RawMessage `json:"strategyAdvice"`
	VideoScript           json.RawMessage `json:"videoScript"`
}

func decodeObject(s string) (*planReply, error) {
	if !strings.HasPrefix(s, "{") {
		return nil, errNotObject
	}
	var r planReply
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ParsePlan turns the model's reply text into a normalized MarketingPlan.
// It fails with *FormatError when neither stage yields a JSON object.
func ParsePlan(text string) (*MarketingPlan, error) {
	r, err := decodeObject(StripFences(text))
	if err != nil {
		sliced, ok := SliceBraces(text)
		if !ok {
			return nil, &FormatError{Message: "failed to parse AI response", Raw: text}
		}
		r, err = decodeObject(sliced)
		if err != nil {
			return nil, &FormatError{Message: "AI data format error", Raw: text, Err: err}
		}
	}
	return r.plan(), nil
}

func (r *planReply) plan() *MarketingPlan {
	p := &MarketingPlan{
		ProductName:           decodeText(r.ProductName, " "),
		PostCaption:           decodeText(r.PostCaption, "\n"),
		Hashtags:              decodeHashtags(r.Hashtags),
		PostingTimeSuggestion: decodeText(r.PostingTimeSuggestion, ", "),
		StrategyAdvice:        decodeText(r.StrategyAdvice, "\n"),
		VideoScript:           decodeText(r.VideoScript, "\n"),
	}
	p.Normalize()
	return p
}

// decodeText reads a string field. Arrays of strings are joined with sep.
// Anything else yields "" and so the field's placeholder.
func decodeText(raw json.RawMessage, sep string) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if item = strings.TrimSpace(item); item != "" {
				parts = append(parts, item)
			}
		}
		return strings.Join(parts, sep)
	}
	return ""
}

func decodeHashtags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, tag := range list {
			if tag = strings.TrimSpace(tag); tag != "" {
				out = append(out, tag)
			}
		}
		return out
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return strings.Fields(joined)
	}
	return []string{}
}
