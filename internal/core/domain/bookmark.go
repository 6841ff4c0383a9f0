package domain

// Bookmark is a titled marker on one page of a Document.
type Bookmark struct {
	ID        string `json:"id" yaml:"id"`
	PDFID     string `json:"pdfId" yaml:"pdfId"`
	Page      int    `json:"page" yaml:"page"`
	Title     string `json:"title" yaml:"title"`
	CreatedAt int64  `json:"createdAt" yaml:"createdAt"`
}
