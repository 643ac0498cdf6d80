package notion

// PropertyBag is a page's property set keyed by the database column name.
type PropertyBag map[string]PropertyValue

// PropertyValue is a single database property. Exactly one payload field is
// populated, selected by Type; the remaining pointers stay nil. Decoding a
// value whose Type does not match the requested kind yields the zero value
// rather than an error.
type PropertyValue struct {
	Type        string         `json:"type,omitempty"`
	Title       []RichTextItem `json:"title,omitempty"`
	RichText    []RichTextItem `json:"rich_text,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	Formula     *FormulaValue  `json:"formula,omitempty"`
	Place       *PlaceValue    `json:"place,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Status      *SelectOption  `json:"status,omitempty"`
}

// Property kind tags as they appear on the wire.
const (
	TypeTitle       = "title"
	TypeRichText    = "rich_text"
	TypeNumber      = "number"
	TypeSelect      = "select"
	TypeMultiSelect = "multi_select"
	TypeDate        = "date"
	TypeFormula     = "formula"
	TypePlace       = "place"
	TypeURL         = "url"
	TypeCheckbox    = "checkbox"
	TypeStatus      = "status"
)

// SelectOption is a select/multi_select/status option reference.
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue is a date property payload. End is empty for single instants;
// values are ISO 8601 dates or datetimes.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// FormulaValue carries a formula result. Only string formulas are consumed
// here (coordinate columns computed from other properties).
type FormulaValue struct {
	Type   string   `json:"type,omitempty"`
	String string   `json:"string,omitempty"`
	Number *float64 `json:"number,omitempty"`
}

// PlaceValue is the structured place payload used by calendar databases.
type PlaceValue struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Name          string  `json:"name,omitempty"`
	Address       string  `json:"address,omitempty"`
	GooglePlaceID string  `json:"google_place_id,omitempty"`
	AppleMapsID   string  `json:"apple_maps_id,omitempty"`
}

// RichTextItem is one segment of a rich text sequence.
type RichTextItem struct {
	Type        string       `json:"type,omitempty"`
	Text        *TextContent `json:"text,omitempty"`
	Mention     *Mention     `json:"mention,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
}

// TextContent is the text payload of a rich text segment.
type TextContent struct {
	Content string    `json:"content"`
	Link    *TextLink `json:"link,omitempty"`
}

// TextLink is an inline hyperlink.
type TextLink struct {
	URL string `json:"url"`
}

// Mention references another object inline; only user mentions are written.
type Mention struct {
	Type string       `json:"type"`
	User *UserMention `json:"user,omitempty"`
}

// UserMention identifies a workspace user by id.
type UserMention struct {
	ID string `json:"id"`
}

// Annotations carries inline formatting flags.
type Annotations struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
	Code   bool `json:"code,omitempty"`
}

// Block is a page content block. As with PropertyValue, exactly one payload
// matches Type.
type Block struct {
	Object           string         `json:"object,omitempty"`
	ID               string         `json:"id,omitempty"`
	Type             string         `json:"type"`
	Paragraph        *RichTextBlock `json:"paragraph,omitempty"`
	Heading1         *RichTextBlock `json:"heading_1,omitempty"`
	Heading2         *RichTextBlock `json:"heading_2,omitempty"`
	Heading3         *RichTextBlock `json:"heading_3,omitempty"`
	NumberedListItem *RichTextBlock `json:"numbered_list_item,omitempty"`
	BulletedListItem *RichTextBlock `json:"bulleted_list_item,omitempty"`
}

// Block type tags.
const (
	BlockParagraph        = "paragraph"
	BlockHeading1         = "heading_1"
	BlockHeading2         = "heading_2"
	BlockHeading3         = "heading_3"
	BlockNumberedListItem = "numbered_list_item"
	BlockBulletedListItem = "bulleted_list_item"
)

// RichTextBlock is the shared payload of text-bearing blocks.
type RichTextBlock struct {
	RichText []RichTextItem `json:"rich_text"`
}

// Cover is a page cover reference. Only uploaded-file covers are written.
type Cover struct {
	Type       string      `json:"type"`
	FileUpload *FileUpload `json:"file_upload,omitempty"`
}

// FileUpload references a completed file upload by id.
type FileUpload struct {
	ID string `json:"id"`
}

// NewFileUploadCover builds a cover referencing an uploaded file.
func NewFileUploadCover(fileUploadID string) *Cover {
	return &Cover{
		Type:       "file_upload",
		FileUpload: &FileUpload{ID: fileUploadID},
	}
}

// Page is a retrieved page: its property bag plus the parent database.
type Page struct {
	ID         string      `json:"id"`
	URL        string      `json:"url,omitempty"`
	Parent     PageParent  `json:"parent"`
	Properties PropertyBag `json:"properties"`
}

// PageParent locates the database (or data source) a page belongs to.
type PageParent struct {
	Type       string `json:"type"`
	DatabaseID string `json:"database_id,omitempty"`
}
