package lex_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/csvdoc/pkg/lex"
)

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		startIndex int
		want       []lex.Lex
	}{
		{name: "empty", text: "", want: nil},
		{name: "comma", text: ",", want: []lex.Lex{lex.NewComma(0)}},
		{name: "newline", text: "\n", want: []lex.Lex{lex.NewNewLine(0)}},
		{name: "crlf", text: "\r\n", want: []lex.Lex{lex.NewCarriageReturnNewLine(0)}},
		{name: "quote", text: `"`, want: []lex.Lex{lex.NewDoubleQuote(0)}},
		{
			name: "letters and digits",
			text: "a1b2",
			want: []lex.Lex{
				lex.NewLetters("a", 0),
				lex.NewDigits("1", 1),
				lex.NewLetters("b", 2),
				lex.NewDigits("2", 3),
			},
		},
		{
			name: "cell row",
			text: "hello, 500\r\n",
			want: []lex.Lex{
				lex.NewLetters("hello", 0),
				lex.NewComma(5),
				lex.NewWhitespace(" ", 6),
				lex.NewDigits("500", 7),
				lex.NewCarriageReturnNewLine(10),
			},
		},
		{
			name: "lone carriage return is whitespace",
			text: " \r \r\n",
			want: []lex.Lex{
				lex.NewWhitespace(" \r ", 0),
				lex.NewCarriageReturnNewLine(3),
			},
		},
		{
			name:       "start index offsets",
			text:       "there",
			startIndex: 6,
			want:       []lex.Lex{lex.NewLetters("there", 6)},
		},
		{
			name: "punctuation is text",
			text: `a.b"`,
			want: []lex.Lex{lex.NewLetters("a.b", 0), lex.NewDoubleQuote(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, lex.Scan(tt.text, tt.startIndex))
		})
	}
}

func TestScan_Lossless(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"A,B,C,D\n1,2,3,4\n,,,",
		`"Then he said, ""Hi there!"""`,
		"é,ü\t\r\n\"x\"\r",
	}

	for _, input := range inputs {
		var builder strings.Builder
		next := 0
		for _, l := range lex.Scan(input, 0) {
			assert.Equal(t, next, l.StartIndex, "lexes must be contiguous for %q", input)
			builder.WriteString(l.Text)
			next = l.AfterEndIndex()
		}
		assert.Equal(t, input, builder.String())
	}
}

func TestLex_IsNewLine(t *testing.T) {
	t.Parallel()

	assert.True(t, lex.NewNewLine(0).IsNewLine())
	assert.True(t, lex.NewCarriageReturnNewLine(0).IsNewLine())
	assert.False(t, lex.NewComma(0).IsNewLine())
	assert.False(t, lex.NewWhitespace("\r", 0).IsNewLine())
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Comma", lex.Comma.String())
	assert.Equal(t, "CarriageReturnNewLine", lex.CarriageReturnNewLine.String())
	assert.Equal(t, "Unknown", lex.Kind(200).String())
}
