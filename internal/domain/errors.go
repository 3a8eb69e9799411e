package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrNoValidDocuments    = errors.New("no readable PDF documents in request")
	ErrSheetGeneration     = errors.New("spreadsheet generation failed")
	ErrQuoteUnavailable    = errors.New("currency quote unavailable")
)
