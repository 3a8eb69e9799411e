package domain

// ItemOrigin marks a line item as domestically sourced or imported.
type ItemOrigin string

const (
	OriginDomestic ItemOrigin = "domestic"
	OriginImported ItemOrigin = "imported"
)

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}

// XLSXContentType is the MIME type used for generated workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
