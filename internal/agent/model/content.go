package model

import (
	"strings"

	"github.com/cloudwego/eino/schema"
)

// FinalContent is the content of the model's final answer: either
// PlainText or StructuredParts.
type FinalContent interface {
	isFinalContent()
}

// PlainText is a final answer delivered as a single string.
type PlainText string

// Part is one typed content part. Text is nil for parts without a text field.
type Part struct {
	Kind string
	Text *string
}

// StructuredParts is a final answer delivered as a sequence of typed parts.
type StructuredParts []Part

func (PlainText) isFinalContent()       {}
func (StructuredParts) isFinalContent() {}

// ContentOf classifies a message's content. Messages carrying multi-part
// content are StructuredParts, everything else is PlainText.
func ContentOf(msg *schema.Message) FinalContent {
	if msg == nil {
		return PlainText("")
	}
	if len(msg.MultiContent) == 0 {
		return PlainText(msg.Content)
	}
	parts := make(StructuredParts, 0, len(msg.MultiContent))
	for _, p := range msg.MultiContent {
		part := Part{Kind: string(p.Type)}
		if p.Type == schema.ChatMessagePartTypeText {
			text := p.Text
			part.Text = &text
		}
		parts = append(parts, part)
	}
	return parts
}

// Normalize reduces final content to plain text. Structured parts are
// concatenated in order; parts without text are dropped.
func Normalize(c FinalContent) string {
	switch v := c.(type) {
	case PlainText:
		return string(v)
	case StructuredParts:
		var b strings.Builder
		for _, p := range v {
			if p.Text != nil {
				b.WriteString(*p.Text)
			}
		}
		return b.String()
	default:
		return ""
	}
}
