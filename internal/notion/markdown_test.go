package notion

import (
	"testing"
)

func TestMarkdownToRichTextBold(t *testing.T) {
	items := MarkdownToRichText("**Flour** - 2 cups")

	if len(items) < 2 {
		t.Fatalf("expected at least 2 segments, got %d: %+v", len(items), items)
	}
	first := items[0]
	if first.Text == nil || first.Text.Content != "Flour" {
		t.Fatalf("first segment = %+v, want content Flour", first)
	}
	if first.Annotations == nil || !first.Annotations.Bold {
		t.Errorf("first segment not bold: %+v", first.Annotations)
	}
	if got := PlainText(items); got != "Flour - 2 cups" {
		t.Errorf("flattened = %q", got)
	}
}

func TestMarkdownToRichTextMultiLine(t *testing.T) {
	source := "**Flour** - 2 cups\n**Salt** - 1 tsp"
	if got := PlainText(MarkdownToRichText(source)); got != "Flour - 2 cups\nSalt - 1 tsp" {
		t.Errorf("flattened = %q", got)
	}
}

func TestMarkdownToRichTextLink(t *testing.T) {
	items := MarkdownToRichText("[Practice with ChatGPT](https://chat.openai.com/?q=hola)")

	if len(items) != 1 {
		t.Fatalf("expected 1 segment, got %d: %+v", len(items), items)
	}
	item := items[0]
	if item.Text == nil || item.Text.Content != "Practice with ChatGPT" {
		t.Fatalf("segment = %+v", item)
	}
	if item.Text.Link == nil || item.Text.Link.URL != "https://chat.openai.com/?q=hola" {
		t.Errorf("link = %+v", item.Text.Link)
	}
}

func TestMarkdownToBlocks(t *testing.T) {
	source := "# Preparation\n1. Chop the onions\n2. Mince the garlic\n# Instructions\nSimmer everything.\n- serve hot"
	blocks := MarkdownToBlocks(source)

	types := make([]string, 0, len(blocks))
	for _, block := range blocks {
		types = append(types, block.Type)
	}
	want := []string{
		BlockHeading1,
		BlockNumberedListItem, BlockNumberedListItem,
		BlockHeading1,
		BlockParagraph,
		BlockBulletedListItem,
	}
	if len(types) != len(want) {
		t.Fatalf("block types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("block types = %v, want %v", types, want)
		}
	}

	if got := PlainText(blocks[0].Heading1.RichText); got != "Preparation" {
		t.Errorf("heading text = %q", got)
	}
	if got := PlainText(blocks[1].NumberedListItem.RichText); got != "Chop the onions" {
		t.Errorf("first step = %q", got)
	}
	if got := PlainText(blocks[5].BulletedListItem.RichText); got != "serve hot" {
		t.Errorf("bullet = %q", got)
	}
}

func TestMarkdownToBlocksHeadingLevels(t *testing.T) {
	blocks := MarkdownToBlocks("## Examples\n### Notes")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Type != BlockHeading2 || blocks[0].Heading2 == nil {
		t.Errorf("first block = %+v, want heading_2", blocks[0])
	}
	if blocks[1].Type != BlockHeading3 || blocks[1].Heading3 == nil {
		t.Errorf("second block = %+v, want heading_3", blocks[1])
	}
}
