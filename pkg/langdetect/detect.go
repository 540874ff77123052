// Package langdetect classifies input files and fenced code block info
// strings using go-enry's linguist data.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// enry language names.
const (
	langCSV      = "CSV"
	langMarkdown = "Markdown"
)

// FileKind is the kind of input a file holds.
type FileKind uint8

const (
	// KindUnknown is a file csvdoc does not read.
	KindUnknown FileKind = iota

	// KindCSV is a CSV file parsed as a whole.
	KindCSV

	// KindMarkdown is a Markdown file whose CSV fences are parsed.
	KindMarkdown
)

// String returns a lowercase name for the kind.
func (k FileKind) String() string {
	switch k {
	case KindCSV:
		return "csv"
	case KindMarkdown:
		return "markdown"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Classify returns the kind of file at path, judged by its extension.
// Extensions shared by several languages (".md") match if any candidate fits.
func Classify(path string) FileKind {
	for _, lang := range enry.GetLanguagesByExtension(path, nil, nil) {
		switch lang {
		case langCSV:
			return KindCSV
		case langMarkdown:
			return KindMarkdown
		}
	}
	return KindUnknown
}

// FenceLanguage resolves the first word of a fence info string to a
// lowercase language name. It returns "" when the word is not a known alias.
func FenceLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}

	// Info strings may carry attributes: "csv{title=x}".
	alias, _, _ := strings.Cut(fields[0], "{")
	lang, ok := enry.GetLanguageByAlias(alias)
	if !ok {
		return ""
	}
	return strings.ToLower(lang)
}

// IsCSVFence reports whether a fence info string names CSV.
func IsCSVFence(info string) bool {
	return FenceLanguage(info) == strings.ToLower(langCSV)
}
