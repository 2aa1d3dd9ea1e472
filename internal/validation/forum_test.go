package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateForumSlug(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"Valid", "rice-growers", false},
		{"Valid With Digits", "zone-2-irrigation", false},
		{"Too Short", "ab", true},
		{"Too Long", "a-very-long-slug-that-exceeds-the-limit", true},
		{"Uppercase", "Rice-Growers", true},
		{"Illegal Chars", "rice_growers", true},
		{"Leading Hyphen", "-rice", true},
		{"Trailing Hyphen", "rice-", true},
		{"Reserved", "admin", true},
		{"Reserved Route", "feed", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForumSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlugFromName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "rice-growers", SlugFromName("Rice Growers"))
	assert.Equal(t, "zone-2-irrigation", SlugFromName("  Zone 2 & Irrigation!  "))
	assert.Equal(t, "a", SlugFromName("A"))
	assert.Empty(t, SlugFromName("!!!"))
}
