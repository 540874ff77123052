package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/csvdoc/pkg/langdetect"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want langdetect.FileKind
	}{
		{path: "data.csv", want: langdetect.KindCSV},
		{path: "dir/DATA.CSV", want: langdetect.KindCSV},
		{path: "README.md", want: langdetect.KindMarkdown},
		{path: "docs/guide.markdown", want: langdetect.KindMarkdown},
		{path: "main.go", want: langdetect.KindUnknown},
		{path: "Makefile.unknownext", want: langdetect.KindUnknown},
		{path: "noextension", want: langdetect.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.Classify(tt.path))
		})
	}
}

func TestIsCSVFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info string
		want bool
	}{
		{info: "csv", want: true},
		{info: "CSV", want: true},
		{info: "  csv  title=people", want: true},
		{info: "csv{title=x}", want: true},
		{info: "go", want: false},
		{info: "", want: false},
		{info: "not-a-language", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.info, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.IsCSVFence(tt.info))
		})
	}
}

func TestFenceLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "csv", langdetect.FenceLanguage("csv"))
	assert.Equal(t, "go", langdetect.FenceLanguage("golang"))
	assert.Empty(t, langdetect.FenceLanguage(""))
}

func TestFileKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "csv", langdetect.KindCSV.String())
	assert.Equal(t, "markdown", langdetect.KindMarkdown.String())
	assert.Equal(t, "unknown", langdetect.KindUnknown.String())
}
