// Package structcontent implements the discriminated structured-content
// tree used by term and kanji glossaries: plain text, images, and a small
// HTML-like element tree (div/span/ruby/table/...).
//
// Parsing uses hand-written UnmarshalJSON on the JSON-ish persisted
// fields rather than relying on struct-tag reflection, because the
// wire shape of `content` is polymorphic: a bare string, a single
// object, or an array of objects.
package structcontent

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates a glossary payload.
type Kind string

const (
	KindText             Kind = "text"
	KindImage            Kind = "image"
	KindStructuredContent Kind = "structured-content"
)

// Glossary is one entry in a term's glossary array: either a bare string
// (implicitly KindText), or a tagged {type: ...} object.
type Glossary struct {
	Kind    Kind
	Text    string
	Image   *ImageElement
	Content Node
}

// UnmarshalJSON accepts a bare string or a {type: "..."} tagged object,
// per spec: "accept both a bare string (treat as Text) and a tagged
// object".
func (g *Glossary) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		g.Kind = KindText
		g.Text = asString
		return nil
	}

	var tagged struct {
		Type    Kind            `json:"type"`
		Text    string          `json:"text"`
		Path    string          `json:"path"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("glossary: unrecognized payload shape: %w", err)
	}

	switch tagged.Type {
	case KindText, "":
		g.Kind = KindText
		g.Text = tagged.Text
	case KindImage:
		g.Kind = KindImage
		var img ImageElement
		if err := json.Unmarshal(data, &img); err != nil {
			return fmt.Errorf("glossary: invalid image element: %w", err)
		}
		g.Image = &img
	case KindStructuredContent:
		g.Kind = KindStructuredContent
		node, err := unmarshalContent(tagged.Content)
		if err != nil {
			return fmt.Errorf("glossary: invalid structured content: %w", err)
		}
		g.Content = node
	default:
		return fmt.Errorf("glossary: unknown type %q", tagged.Type)
	}
	return nil
}

// ElementTag is the HTML-like tag a Node was parsed from.
type ElementTag string

const (
	TagAnchor           ElementTag = "a"
	TagDiv              ElementTag = "div"
	TagSpan             ElementTag = "span"
	TagOrderedList      ElementTag = "ol"
	TagUnorderedList    ElementTag = "ul"
	TagListItem         ElementTag = "li"
	TagDetails          ElementTag = "details"
	TagSummary          ElementTag = "summary"
	TagTable            ElementTag = "table"
	TagTableHead        ElementTag = "thead"
	TagTableBody        ElementTag = "tbody"
	TagTableFoot        ElementTag = "tfoot"
	TagTableRow         ElementTag = "tr"
	TagTableData        ElementTag = "td"
	TagTableHeader      ElementTag = "th"
	TagRuby             ElementTag = "ruby"
	TagRubyText         ElementTag = "rt"
	TagRubyParenthesis  ElementTag = "rp"
	TagLineBreak        ElementTag = "br"
	TagImage            ElementTag = "img"
)

// Variant is the semantic bucket an element tag dispatches to.
type Variant int

const (
	VariantText Variant = iota
	VariantImage
	VariantLineBreak
	VariantLink
	VariantStyled
	VariantUnstyled
	VariantTable
)

func variantForTag(tag ElementTag) Variant {
	switch tag {
	case TagAnchor:
		return VariantLink
	case TagDiv, TagSpan, TagOrderedList, TagUnorderedList, TagListItem, TagDetails, TagSummary:
		return VariantStyled
	case TagRuby, TagRubyText, TagRubyParenthesis, TagTable, TagTableHead, TagTableBody, TagTableFoot, TagTableRow:
		return VariantUnstyled
	case TagTableData, TagTableHeader:
		return VariantTable
	case TagLineBreak:
		return VariantLineBreak
	case TagImage:
		return VariantImage
	default:
		return VariantStyled
	}
}

// Style is a flat record of optional styling fields, matching the
// Yomichan structured-content style object.
type Style struct {
	FontStyle       string `json:"fontStyle,omitempty"`
	FontWeight      string `json:"fontWeight,omitempty"`
	FontSize        string `json:"fontSize,omitempty"`
	Color           string `json:"color,omitempty"`
	Background      string `json:"background,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextDecoration  string `json:"textDecorationLine,omitempty"`
	VerticalAlign   string `json:"verticalAlign,omitempty"`
	TextAlign       string `json:"textAlign,omitempty"`
	MarginTop       string `json:"marginTop,omitempty"`
	MarginBottom    string `json:"marginBottom,omitempty"`
	PaddingLeft     string `json:"paddingLeft,omitempty"`
	PaddingRight    string `json:"paddingRight,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
	WordBreak       string `json:"wordBreak,omitempty"`
	WhiteSpace      string `json:"whiteSpace,omitempty"`
	ListStyleType   string `json:"listStyleType,omitempty"`
	SizeUnits       string `json:"sizeUnits,omitempty"`
}

// Node is one element of the structured-content tree.
type Node struct {
	Variant Variant
	Tag     ElementTag

	// Text is set when the node's own `content` field is a bare string.
	// Child is set when `content` is a single object. Children is set
	// when `content` is an array. At most one of the three is populated
	// for a given node, mirroring the three observable JSON shapes; none
	// is set when the node has no `content`.
	Text     string
	Child    *Node
	Children []Node

	Style Style

	// Link-specific.
	Href string `json:"href,omitempty"`
	// Image-specific.
	Image *ImageElement
}

// ImageElement carries an opaque media reference; media bytes
// themselves are out of scope for lookup.
type ImageElement struct {
	Path            string  `json:"path"`
	Width           float64 `json:"width,omitempty"`
	Height          float64 `json:"height,omitempty"`
	Title           string  `json:"title,omitempty"`
	Alt             string  `json:"alt,omitempty"`
	Description     string  `json:"description,omitempty"`
	PixelWidth      float64 `json:"pixelWidth,omitempty"`
	PixelHeight     float64 `json:"pixelHeight,omitempty"`
	CollapsedHeight float64 `json:"collapsedHeight,omitempty"`
}

type rawElement struct {
	Tag     ElementTag      `json:"tag"`
	Content json.RawMessage `json:"content"`
	Style   Style           `json:"style"`
	Href    string          `json:"href"`
	Path    string          `json:"path"`
}

// unmarshalContent implements the "string | object | array" acceptance
// rule for a content field.
func unmarshalContent(data json.RawMessage) (Node, error) {
	if len(data) == 0 {
		return Node{}, nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		return Node{Variant: VariantText, Text: asString}, nil
	}

	var asArray []json.RawMessage
	if err := json.Unmarshal(data, &asArray); err == nil {
		children := make([]Node, 0, len(asArray))
		for _, item := range asArray {
			child, err := unmarshalElement(item)
			if err != nil {
				return Node{}, err
			}
			children = append(children, child)
		}
		return Node{Children: children}, nil
	}

	return unmarshalElement(data)
}

func unmarshalElement(data json.RawMessage) (Node, error) {
	var raw rawElement
	if err := json.Unmarshal(data, &raw); err != nil {
		return Node{}, err
	}

	node := Node{
		Variant: variantForTag(raw.Tag),
		Tag:     raw.Tag,
		Style:   raw.Style,
		Href:    raw.Href,
	}

	switch raw.Tag {
	case TagImage:
		var img ImageElement
		if err := json.Unmarshal(data, &img); err != nil {
			return Node{}, fmt.Errorf("structcontent: invalid img element: %w", err)
		}
		node.Image = &img
		return node, nil
	case TagLineBreak:
		return node, nil
	}

	if len(raw.Content) == 0 {
		return node, nil
	}

	var asString string
	if err := json.Unmarshal(raw.Content, &asString); err == nil {
		node.Text = asString
		return node, nil
	}

	var asArray []json.RawMessage
	if err := json.Unmarshal(raw.Content, &asArray); err == nil {
		children := make([]Node, 0, len(asArray))
		for _, item := range asArray {
			child, err := unmarshalElement(item)
			if err != nil {
				return Node{}, err
			}
			children = append(children, child)
		}
		node.Children = children
		return node, nil
	}

	child, err := unmarshalElement(raw.Content)
	if err != nil {
		return Node{}, err
	}
	node.Child = &child
	return node, nil
}

// CollectText is the DFS helper the importer uses to synthesize a
// plain-text definition alongside the structured tree.
func CollectText(n Node) []string {
	var out []string
	collectText(n, &out)
	return out
}

func collectText(n Node, out *[]string) {
	if n.Text != "" {
		*out = append(*out, n.Text)
	}
	if n.Child != nil {
		collectText(*n.Child, out)
	}
	for _, child := range n.Children {
		collectText(child, out)
	}
}

// CollectGlossaryText flattens a glossary entry, descending into
// structured content when present.
func CollectGlossaryText(g Glossary) []string {
	switch g.Kind {
	case KindText:
		if g.Text == "" {
			return nil
		}
		return []string{g.Text}
	case KindStructuredContent:
		return CollectText(g.Content)
	default:
		return nil
	}
}
