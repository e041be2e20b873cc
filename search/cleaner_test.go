package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"collapses whitespace", "a\t b \n\n c", "a b c"},
		{"strips control chars", "a\x00b\x01c", "abc"},
		{"trims", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only controls", "\x00\x01\x02", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestStripTags(t *testing.T) {
	in := `<w:p><w:r><w:t>Senior Java</w:t></w:r><w:t>Developer</w:t></w:p>`
	assert.Equal(t, "Senior Java Developer", stripTags(in))
}
