package port

import "context"

// DocumentText is the text layer pulled out of an uploaded document.
type DocumentText struct {
	Text      string
	PageCount int
}

// TextExtractor abstracts plain-text extraction from a PDF byte stream.
type TextExtractor interface {
	ExtractText(ctx context.Context, fileBytes []byte) (*DocumentText, error)
}
