package ai

import (
	"strings"

	"github.com/tidwall/gjson"
)

// EnvelopeKind tells which response shape the text was taken from.
type EnvelopeKind int

const (
	KindUnknown EnvelopeKind = iota
	KindOutputText
	KindOutputString
	KindOutputContent
	KindOutputItems
	KindChoiceMessage
)

func (k EnvelopeKind) String() string {
	switch k {
	case KindOutputText:
		return "output_text"
	case KindOutputString:
		return "output"
	case KindOutputContent:
		return "output.content"
	case KindOutputItems:
		return "output[].content[].text"
	case KindChoiceMessage:
		return "choices[0].message.content"
	default:
		return "raw"
	}
}

// Envelope is the normalized form of a content-service response.
type Envelope struct {
	Kind EnvelopeKind
	Text string
}

// DecodeEnvelope inspects the known response shapes in priority order and
// returns the first non-empty text found. An unrecognised shape yields the
// raw JSON itself so the caller always has something to parse.
func DecodeEnvelope(raw []byte) Envelope {
	if !gjson.ValidBytes(raw) {
		return Envelope{Kind: KindUnknown, Text: string(raw)}
	}
	doc := gjson.ParseBytes(raw)

	if v := doc.Get("output_text"); v.Type == gjson.String && v.String() != "" {
		return Envelope{Kind: KindOutputText, Text: v.String()}
	}

	output := doc.Get("output")
	if output.Type == gjson.String && output.String() != "" {
		return Envelope{Kind: KindOutputString, Text: output.String()}
	}
	if output.IsObject() {
		if v := output.Get("content"); v.Type == gjson.String && v.String() != "" {
			return Envelope{Kind: KindOutputContent, Text: v.String()}
		}
	}
	if output.IsArray() {
		if text := joinOutputItems(output); text != "" {
			return Envelope{Kind: KindOutputItems, Text: text}
		}
	}

	if v := doc.Get("choices.0.message.content"); v.Type == gjson.String && v.String() != "" {
		return Envelope{Kind: KindChoiceMessage, Text: v.String()}
	}

	return Envelope{Kind: KindUnknown, Text: doc.Raw}
}

// joinOutputItems joins the text parts of message items with newlines,
// skipping reasoning and tool-call items.
func joinOutputItems(output gjson.Result) string {
	var parts []string
	output.ForEach(func(_, item gjson.Result) bool {
		item.Get("content").ForEach(func(_, part gjson.Result) bool {
			if t := part.Get("type").String(); t != "" && t != "output_text" && t != "text" {
				return true
			}
			if text := part.Get("text"); text.Type == gjson.String && text.String() != "" {
				parts = append(parts, text.String())
			}
			return true
		})
		return true
	})
	return strings.Join(parts, "\n")
}
