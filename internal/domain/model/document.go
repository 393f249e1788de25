package model

// Document is an uploaded income proof before text extraction.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}
