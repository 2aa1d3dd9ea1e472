package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var forumSlugRegex = regexp.MustCompile(`^[a-z0-9-]{3,32}$`)

var reservedForumSlugs = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"auth":     {},
	"feed":     {},
	"forums":   {},
	"f":        {},
	"users":    {},
	"posts":    {},
	"comments": {},
	"ws":       {},
	"swagger":  {},
	"metrics":  {},
	"health":   {},
	"login":    {},
	"signup":   {},
}

// ValidateForumSlug validates forum slug format and reserved names.
func ValidateForumSlug(slug string) error {
	if !forumSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 3-32 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedForumSlugs[slug]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}

// SlugFromName derives a slug candidate from a display name. The result still
// has to pass ValidateForumSlug.
func SlugFromName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 32 {
		slug = strings.Trim(slug[:32], "-")
	}
	return slug
}
