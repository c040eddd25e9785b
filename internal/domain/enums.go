package domain

type DocType string

const (
	DocGoogleDoc   DocType = "DOC"
	DocGoogleSheet DocType = "SHEET"
	DocPDF         DocType = "PDF"
	DocOther       DocType = "OTHER"
)

// ValidDocTypes is the canonical set of accepted document type strings.
var ValidDocTypes = map[string]bool{
	"DOC": true, "SHEET": true, "PDF": true, "OTHER": true,
}

// ParseDocType maps a raw string to a DocType, defaulting to DocOther
// for anything unrecognised.
func ParseDocType(s string) DocType {
	if ValidDocTypes[s] {
		return DocType(s)
	}
	return DocOther
}

// PlaceholderField identifies the mutable fields of a Placeholder.
type PlaceholderField string

const (
	FieldValue       PlaceholderField = "value"
	FieldDescription PlaceholderField = "description"
)
