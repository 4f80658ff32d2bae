package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello_world"},
		{"  My   First Post  ", "my_first_post"},
		{"A Very Long Title That Keeps Going", "a_very_long_title_th"},
		// the cap applies to the title, so later words never bleed in
		{"Space:  The   Final    Frontier", "space_the_final"},
		{"Go 1.24 Released!", "go_124_released"},
		{"???", "post"},
		{"", "post"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.title))
			assert.LessOrEqual(t, len(slugify(tt.title)), slugMaxLen)
		})
	}
}
