package post

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/models"
)

const slugMaxLen = 20

var slugInvalidPattern = regexp.MustCompile(`[^a-z0-9_]+`)

// slugify derives the base slug from a title. The first 20 characters of the
// title are taken first, then lowercased with underscores for whitespace, so
// trailing words never bleed into the slug.
func slugify(title string) string {
	r := []rune(title)
	if len(r) > slugMaxLen {
		r = r[:slugMaxLen]
	}
	s := strings.ToLower(strings.TrimSpace(string(r)))
	s = strings.Join(strings.Fields(s), "_")
	s = slugInvalidPattern.ReplaceAllString(s, "")
	s = strings.Trim(s, "_")
	if s == "" {
		s = "post"
	}
	return s
}

// uniqueSlug appends a numeric suffix until the slug is unused. excludeID
// lets updates keep their own slug.
func uniqueSlug(db *gorm.DB, title, excludeID string) (string, error) {
	base := slugify(title)
	slug := base
	for i := 1; ; i++ {
		var count int64
		q := db.Model(&models.PostModel{}).Where("slug = ?", slug)
		if excludeID != "" {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s_%d", base, i)
	}
}
