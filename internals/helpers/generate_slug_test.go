package helper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newmeclass_backend/internals/databases/dbtest"
)

type slugRow struct {
	PostID   uuid.UUID `gorm:"column:post_id;type:uuid;primaryKey"`
	PostSlug string    `gorm:"column:post_slug"`
}

func (slugRow) TableName() string { return "slug_rows" }

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Tips Karir 2026!":          "tips-karir-2026",
		"  --Halo   Dunia--  ":      "halo-dunia",
		"Kepribadian & Bakat (AI)":  "kepribadian-bakat-ai",
		"":                          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, GenerateSlug(in), in)
	}
}

func TestGenerateUniqueSlug(t *testing.T) {
	db := dbtest.Open(t, &slugRow{})
	opts := SlugOptions{Table: "slug_rows", SlugColumn: "post_slug", IDColumn: "post_id"}

	s, err := GenerateUniqueSlug(db, opts, "Halo Dunia")
	require.NoError(t, err)
	assert.Equal(t, "halo-dunia", s)

	first := slugRow{PostID: uuid.New(), PostSlug: s}
	require.NoError(t, db.Create(&first).Error)

	s, err = GenerateUniqueSlug(db, opts, "Halo  Dunia")
	require.NoError(t, err)
	assert.Equal(t, "halo-dunia-2", s)

	// update baris sendiri tidak dianggap bentrok
	opts.ExcludeID = first.PostID
	s, err = GenerateUniqueSlug(db, opts, "Halo Dunia")
	require.NoError(t, err)
	assert.Equal(t, "halo-dunia", s)

	opts.ExcludeID = nil
	opts.DefaultBase = "artikel"
	s, err = GenerateUniqueSlug(db, opts, "!!!")
	require.NoError(t, err)
	assert.Equal(t, "artikel", s)

	_, err = GenerateUniqueSlug(db, SlugOptions{}, "x")
	assert.Error(t, err)
}
