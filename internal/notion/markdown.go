package notion

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown conversion for generated content. Bold/emphasis markers, inline
// code and links become real rich text annotations instead of literal
// asterisks; headings and list items become their block counterparts.

var markdown = goldmark.New()

// MarkdownToRichText converts a markdown string to a rich text sequence.
// Block boundaries and soft line breaks become newline characters inside the
// sequence, so multi-line list fields survive as a single rich_text value.
func MarkdownToRichText(source string) []RichTextItem {
	src := []byte(source)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var items []RichTextItem
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if len(items) > 0 {
			items = append(items, NewTextItem("\n"))
		}
		items = append(items, inlineRichText(src, node, inlineStyle{})...)
	}
	return items
}

// MarkdownToBlocks converts a markdown document to page content blocks.
// Supported: headings 1-3, paragraphs, ordered and unordered lists.
func MarkdownToBlocks(source string) []Block {
	src := []byte(source)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var blocks []Block
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			blocks = append(blocks, headingBlock(n.Level, inlineRichText(src, n, inlineStyle{})))
		case *ast.List:
			itemType := BlockBulletedListItem
			if n.IsOrdered() {
				itemType = BlockNumberedListItem
			}
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				block := Block{Object: "block", Type: itemType}
				payload := &RichTextBlock{RichText: inlineRichText(src, item, inlineStyle{})}
				if n.IsOrdered() {
					block.NumberedListItem = payload
				} else {
					block.BulletedListItem = payload
				}
				blocks = append(blocks, block)
			}
		default:
			blocks = append(blocks, Block{
				Object:    "block",
				Type:      BlockParagraph,
				Paragraph: &RichTextBlock{RichText: inlineRichText(src, n, inlineStyle{})},
			})
		}
	}
	return blocks
}

func headingBlock(level int, items []RichTextItem) Block {
	payload := &RichTextBlock{RichText: items}
	switch {
	case level <= 1:
		return Block{Object: "block", Type: BlockHeading1, Heading1: payload}
	case level == 2:
		return Block{Object: "block", Type: BlockHeading2, Heading2: payload}
	default:
		return Block{Object: "block", Type: BlockHeading3, Heading3: payload}
	}
}

type inlineStyle struct {
	bold   bool
	italic bool
	code   bool
	link   string
}

func inlineRichText(src []byte, node ast.Node, style inlineStyle) []RichTextItem {
	var items []RichTextItem
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			content := string(n.Segment.Value(src))
			if n.SoftLineBreak() || n.HardLineBreak() {
				content += "\n"
			}
			if content != "" {
				items = append(items, styledTextItem(content, style))
			}
		case *ast.Emphasis:
			next := style
			if n.Level >= 2 {
				next.bold = true
			} else {
				next.italic = true
			}
			items = append(items, inlineRichText(src, n, next)...)
		case *ast.CodeSpan:
			next := style
			next.code = true
			items = append(items, inlineRichText(src, n, next)...)
		case *ast.Link:
			next := style
			next.link = string(n.Destination)
			items = append(items, inlineRichText(src, n, next)...)
		case *ast.AutoLink:
			url := string(n.URL(src))
			next := style
			next.link = url
			items = append(items, styledTextItem(url, next))
		default:
			items = append(items, inlineRichText(src, child, style)...)
		}
	}
	return items
}

func styledTextItem(content string, style inlineStyle) RichTextItem {
	item := NewTextItem(content)
	if style.bold || style.italic || style.code {
		item.Annotations = &Annotations{
			Bold:   style.bold,
			Italic: style.italic,
			Code:   style.code,
		}
	}
	if style.link != "" {
		item.Text.Link = &TextLink{URL: style.link}
	}
	return item
}
