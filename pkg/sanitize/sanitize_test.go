package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "Jl. Sudirman No. 5, RT 01/RW 02", want: "Jl. Sudirman No. 5, RT 01/RW 02"},
		{name: "ampersand kept readable", input: "Toko A & B", want: "Toko A & B"},
		{name: "script block removed", input: "Budi<script>alert(1)</script>", want: "Budi"},
		{name: "javascript scheme removed", input: "javascript:alert(1)", want: "alert(1)"},
		{name: "inline handler removed", input: `<img src=x onerror=alert(1)>Rumah`, want: "Rumah"},
		{name: "bare handler text removed", input: "onclick=steal()", want: "steal()"},
		{name: "tags stripped", input: "<b>Siti</b> <i>Aminah</i>", want: "Siti Aminah"},
		{name: "encoded markup not resurrected", input: "&lt;script&gt;x", want: "scriptx"},
		{name: "whitespace trimmed", input: "  Andi  ", want: "Andi"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Text(tc.input))
		})
	}
}
