package domain

// FileFormat groups file extensions by the extraction strategy that reads them.
type FileFormat string

const (
	FormatPDF      FileFormat = "pdf"
	FormatDocument FileFormat = "document"
	FormatTabular  FileFormat = "tabular"
	FormatImage    FileFormat = "image"
)

// SupportedExtensions maps lower-cased file extensions (with dot) to FileFormat.
var SupportedExtensions = map[string]FileFormat{
	".pdf":  FormatPDF,
	".docx": FormatDocument,
	".doc":  FormatDocument,
	".csv":  FormatTabular,
	".xlsx": FormatTabular,
	".xls":  FormatTabular,
	".jpg":  FormatImage,
	".jpeg": FormatImage,
	".png":  FormatImage,
	".svg":  FormatImage,
}

// SourceOrigin records where a document's bytes were loaded from.
type SourceOrigin string

const (
	OriginRemote        SourceOrigin = "remote"
	OriginLocal         SourceOrigin = "local"
	OriginObjectStorage SourceOrigin = "object_storage"
)
