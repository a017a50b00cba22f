package helper

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

const DefaultSlugMaxLen = 160

// SlugOptions menentukan cara cek keunikan slug di DB.
type SlugOptions struct {
	Table            string // contoh: "articles"
	SlugColumn       string // contoh: "article_slug"
	SoftDeleteColumn string // kosongkan jika tidak pakai soft-delete
	IDColumn         string // default "id"
	ExcludeID        any    // saat update: abaikan baris ini sendiri
	MaxLen           int
	DefaultBase      string // fallback kalau base kosong setelah dinormalisasi
}

// GenerateSlug: lower-case, non-alnum jadi "-", tanpa "-" beruntun / di ujung.
func GenerateSlug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func cutToLen(s string, n int) string {
	if n > 0 && len(s) > n {
		s = s[:n]
	}
	return strings.Trim(s, "-")
}

func slugTaken(db *gorm.DB, opts SlugOptions, candidate string) (bool, error) {
	q := db.Table(opts.Table).Where(fmt.Sprintf("lower(%s) = lower(?)", opts.SlugColumn), candidate)
	if opts.SoftDeleteColumn != "" {
		q = q.Where(fmt.Sprintf("%s IS NULL", opts.SoftDeleteColumn))
	}
	if opts.ExcludeID != nil {
		idCol := opts.IDColumn
		if idCol == "" {
			idCol = "id"
		}
		q = q.Where(fmt.Sprintf("%s <> ?", idCol), opts.ExcludeID)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// GenerateUniqueSlug: coba base, lalu base-2, base-3, ... sampai belum dipakai.
func GenerateUniqueSlug(db *gorm.DB, opts SlugOptions, base string) (string, error) {
	if opts.Table == "" || opts.SlugColumn == "" {
		return "", errors.New("slug options: table/slug column required")
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}

	slug := cutToLen(GenerateSlug(base), maxLen)
	if slug == "" {
		slug = cutToLen(GenerateSlug(opts.DefaultBase), maxLen)
	}
	if slug == "" {
		slug = "x"
	}

	for i := 1; i < 1000; i++ {
		candidate := slug
		if i > 1 {
			suf := fmt.Sprintf("-%d", i)
			candidate = cutToLen(slug, maxLen-len(suf)) + suf
		}
		taken, err := slugTaken(db, opts, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.New("failed to generate unique slug after many attempts")
}
