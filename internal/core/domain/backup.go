package domain

// BackupSchemaVersion is the schema version written by Export.
// Version 1 is the unversioned format (documents, highlights, topics and
// the last-opened pointer); version 2 adds bookmarks.
const BackupSchemaVersion = 2

// BackupFormat selects the encoding of a backup document.
type BackupFormat string

// Supported backup formats.
const (
	BackupFormatJSON BackupFormat = "json"
	BackupFormatYAML BackupFormat = "yaml"
)

// IsValid returns true if the format is recognised.
func (f BackupFormat) IsValid() bool {
	return f == BackupFormatJSON || f == BackupFormatYAML
}

// Backup is a full snapshot of the store.
type Backup struct {
	SchemaVersion int         `json:"schemaVersion" yaml:"schemaVersion"`
	PDFs          []Document  `json:"pdfs" yaml:"pdfs"`
	LastPDFID     *string     `json:"lastPdfId" yaml:"lastPdfId"`
	Highlights    []Highlight `json:"highlights" yaml:"highlights"`
	Topics        []Topic     `json:"topics" yaml:"topics"`
	Bookmarks     []Bookmark  `json:"bookmarks,omitempty" yaml:"bookmarks,omitempty"`
}

// LastOpened returns the last-opened document id, or "".
func (b *Backup) LastOpened() string {
	if b.LastPDFID == nil {
		return ""
	}
	return *b.LastPDFID
}

// Normalise replaces nil slices with empty ones and applies the record
// defaults, so that decoded and exported snapshots compare equal.
func (b *Backup) Normalise() {
	if b.SchemaVersion == 0 {
		b.SchemaVersion = 1
	}
	if b.PDFs == nil {
		b.PDFs = []Document{}
	}
	if b.Highlights == nil {
		b.Highlights = []Highlight{}
	}
	if b.Topics == nil {
		b.Topics = []Topic{}
	}
	if b.Bookmarks == nil {
		b.Bookmarks = []Bookmark{}
	}
	for i := range b.Topics {
		b.Topics[i].SetParent(b.Topics[i].Parent())
	}
	for i := range b.Highlights {
		if b.Highlights[i].TopicIDs == nil {
			b.Highlights[i].TopicIDs = []string{}
		}
		if len(b.Highlights[i].Tags) == 0 {
			b.Highlights[i].Tags = nil
		}
	}
	if b.LastPDFID != nil && *b.LastPDFID == "" {
		b.LastPDFID = nil
	}
}
