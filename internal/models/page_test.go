package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest(t *testing.T) {
	p := PageRequest{Number: 3, Size: 12}
	assert.Equal(t, 24, p.Offset())
	assert.Equal(t, 1, p.LastPage(0))
	assert.Equal(t, 1, p.LastPage(12))
	assert.Equal(t, 2, p.LastPage(13))
}

func TestValidationError(t *testing.T) {
	var empty ValidationError
	assert.NoError(t, empty.OrNil())

	err := NewValidationError("title", "required", "Title is required").
		Add("city", "required", "City is required")
	assert.EqualError(t, err, "validation failed: title, city")

	var verr *ValidationError
	assert.True(t, errors.As(err.OrNil(), &verr))
	assert.Len(t, verr.Fields, 2)
}

func TestSplitName(t *testing.T) {
	first, last := SplitName("  Ada  King Lovelace ")
	assert.Equal(t, "Ada", first)
	assert.Equal(t, "King Lovelace", last)

	first, last = SplitName("")
	assert.Empty(t, first)
	assert.Empty(t, last)
}

func TestValidInquiryStatus(t *testing.T) {
	assert.True(t, ValidInquiryStatus(InquiryStatusContacted))
	assert.False(t, ValidInquiryStatus("archived"))
}
