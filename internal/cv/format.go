package cv

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported source document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatDOC  Format = "doc"
	FormatTXT  Format = "txt"
	FormatODT  Format = "odt"
	FormatTEX  Format = "tex"
	FormatHTML Format = "html"
	FormatRTF  Format = "rtf"
)

// SupportedFormats lists formats in the order they are reported to clients.
var SupportedFormats = []Format{
	FormatPDF, FormatDOCX, FormatDOC, FormatTXT, FormatODT, FormatTEX, FormatHTML, FormatRTF,
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// DetectFormat picks a format from the file name's extension. Content is not
// sniffed; a missing or unknown extension is ErrUnsupportedFormat.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range SupportedFormats {
		if ext == f.Extension() {
			return f, nil
		}
	}
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, filepath.Base(filename))
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}
