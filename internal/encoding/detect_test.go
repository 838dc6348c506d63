package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salesagent/internal/encoding"
)

func TestDetect(t *testing.T) {
	const header = "Código;Comissão\n"

	type testCase struct {
		name        string
		input       []byte
		want        string
		wantCharset string
	}

	tests := []testCase{
		{
			name:        "UTF8Passthrough",
			input:       []byte("Código;Comissão;Cliente (Cidade)\nA1;R$ 12,50;São Paulo\n"),
			want:        "Código;Comissão;Cliente (Cidade)\nA1;R$ 12,50;São Paulo\n",
			wantCharset: encoding.CharsetUTF8,
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, header...),
			want:        header,
			wantCharset: encoding.CharsetUTF8,
		},
		{
			// ó = 0xF3, ã = 0xE3 in Windows-1252.
			name: "Latin1",
			input: []byte{
				'C', 0xF3, 'd', 'i', 'g', 'o', ';',
				'C', 'o', 'm', 'i', 's', 's', 0xE3, 'o', '\n',
			},
			want: header,
		},
		{
			name:        "UTF16LEWithBOM",
			input:       utf16LE(header),
			want:        header,
			wantCharset: encoding.CharsetUTF16LE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := encoding.Detect(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, d.Charset)
			}
		})
	}
}

func TestNewUTF8Reader_LongUTF8(t *testing.T) {
	// Accented runes straddle the sniff window.
	input := strings.Repeat("ção;", 2000)

	r, err := encoding.NewUTF8Reader(strings.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func utf16LE(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}

	return out
}
