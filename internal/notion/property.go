package notion

import "strings"

// Decode helpers. All of them are total: a missing field, or a field whose
// tag does not match the requested kind, yields the kind's zero value so
// partial or evolving database schemas never break reconstruction.

// PlainText flattens a rich text sequence by concatenating its segments in
// order with no separator. Segments carry their own newlines where needed.
func PlainText(items []RichTextItem) string {
	var b strings.Builder
	for _, item := range items {
		if item.PlainText != "" {
			b.WriteString(item.PlainText)
			continue
		}
		if item.Text != nil {
			b.WriteString(item.Text.Content)
		}
	}
	return b.String()
}

// TitleValue decodes a title property to its flattened text.
func (bag PropertyBag) TitleValue(field string) string {
	prop, ok := bag[field]
	if !ok || prop.Type != TypeTitle {
		return ""
	}
	return PlainText(prop.Title)
}

// TextValue decodes a rich_text property to its flattened text.
func (bag PropertyBag) TextValue(field string) string {
	prop, ok := bag[field]
	if !ok || prop.Type != TypeRichText {
		return ""
	}
	return PlainText(prop.RichText)
}

// NumberValue decodes a number property, zero when absent or unset.
func (bag PropertyBag) NumberValue(field string) float64 {
	prop, ok := bag[field]
	if !ok || prop.Type != TypeNumber || prop.Number == nil {
		return 0
	}
	return *prop.Number
}

// SelectValue decodes a select property to the selected option name.
func (bag PropertyBag) SelectValue(field string) string {
	prop, ok := bag[field]
	if !ok || prop.Type != TypeSelect || prop.Select == nil {
		return ""
	}
	return prop.Select.Name
}

// MultiSelectValue decodes a multi_select property to its option names,
// preserving order.
func (bag PropertyBag) MultiSelectValue(field string) []string {
	prop, ok := bag[field]
	if !ok || prop.Type != TypeMultiSelect {
		return nil
	}
	names := make([]string, 0, len(prop.MultiSelect))
	for _, option := range prop.MultiSelect {
		names = append(names, option.Name)
	}
	return names
}

// DateValueOf decodes a date property, nil when absent.
func (bag PropertyBag) DateValueOf(field string) *DateValue {
	prop, ok := bag[field]
	if !ok || prop.Type != TypeDate {
		return nil
	}
	return prop.Date
}

// FormulaString decodes a string-typed formula result.
func (bag PropertyBag) FormulaString(field string) string {
	prop, ok := bag[field]
	if !ok || prop.Type != TypeFormula || prop.Formula == nil {
		return ""
	}
	return prop.Formula.String
}

// PlaceValueOf decodes a place property, nil when absent.
func (bag PropertyBag) PlaceValueOf(field string) *PlaceValue {
	prop, ok := bag[field]
	if !ok || prop.Type != TypePlace {
		return nil
	}
	return prop.Place
}

// URLValue decodes a url property, empty when absent or unset.
func (bag PropertyBag) URLValue(field string) string {
	prop, ok := bag[field]
	if !ok || prop.Type != TypeURL || prop.URL == nil {
		return ""
	}
	return *prop.URL
}

// CheckboxValue decodes a checkbox property, false when absent.
func (bag PropertyBag) CheckboxValue(field string) bool {
	prop, ok := bag[field]
	if !ok || prop.Type != TypeCheckbox || prop.Checkbox == nil {
		return false
	}
	return *prop.Checkbox
}

// StatusValue decodes a status property to the current status name.
func (bag PropertyBag) StatusValue(field string) string {
	prop, ok := bag[field]
	if !ok || prop.Type != TypeStatus || prop.Status == nil {
		return ""
	}
	return prop.Status.Name
}

// FirstTitleValue finds the bag's title property without knowing its column
// name and decodes it. Falls back across all fields since every database has
// exactly one title column.
func (bag PropertyBag) FirstTitleValue() string {
	for _, prop := range bag {
		if prop.Type == TypeTitle {
			return PlainText(prop.Title)
		}
	}
	return ""
}

// Encode constructors. Encode is total for well-formed domain values; the
// caller supplies values matching the column's declared kind. The type tag is
// set so encoded bags decode symmetrically; the write API tolerates it.

// NewTitle encodes a plain string as a title property.
func NewTitle(content string) PropertyValue {
	return PropertyValue{Type: TypeTitle, Title: []RichTextItem{NewTextItem(content)}}
}

// NewText encodes a plain string as a single-segment rich_text property.
func NewText(content string) PropertyValue {
	return PropertyValue{Type: TypeRichText, RichText: []RichTextItem{NewTextItem(content)}}
}

// NewRichText encodes an already-built rich text sequence, typically the
// output of MarkdownToRichText.
func NewRichText(items []RichTextItem) PropertyValue {
	return PropertyValue{Type: TypeRichText, RichText: items}
}

// NewNumber encodes a number property.
func NewNumber(value float64) PropertyValue {
	return PropertyValue{Type: TypeNumber, Number: &value}
}

// NewSelect encodes a select property.
func NewSelect(name string) PropertyValue {
	return PropertyValue{Type: TypeSelect, Select: &SelectOption{Name: name}}
}

// NewMultiSelect encodes the values as option references in the given order.
func NewMultiSelect(names []string) PropertyValue {
	options := make([]SelectOption, 0, len(names))
	for _, name := range names {
		options = append(options, SelectOption{Name: name})
	}
	return PropertyValue{Type: TypeMultiSelect, MultiSelect: options}
}

// NewDate encodes a date property. End may be empty.
func NewDate(start, end string) PropertyValue {
	return PropertyValue{Type: TypeDate, Date: &DateValue{Start: start, End: end}}
}

// NewURL encodes a url property.
func NewURL(url string) PropertyValue {
	return PropertyValue{Type: TypeURL, URL: &url}
}

// NewCheckbox encodes a checkbox property.
func NewCheckbox(checked bool) PropertyValue {
	return PropertyValue{Type: TypeCheckbox, Checkbox: &checked}
}

// NewTextItem wraps a string as a single text segment.
func NewTextItem(content string) RichTextItem {
	return RichTextItem{Type: "text", Text: &TextContent{Content: content}}
}
