package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardType(t *testing.T) {
	cases := map[string]CardType{
		"S":       Student,
		"student": Student,
		"学生":      Student,
		"T":       Teacher,
		" Teacher": Teacher,
		"教师":      Teacher,
	}
	for in, want := range cases {
		got, err := ParseCardType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCardType("staff")
	assert.ErrorIs(t, err, ErrInvalidCardType)
}

func TestCardValidate(t *testing.T) {
	assert.NoError(t, (&Card{Name: "Alice", Department: "CS", Type: Student}).Validate())
	assert.ErrorIs(t, (&Card{Name: "Alice", Type: "X"}).Validate(), ErrInvalidCardType)
	assert.ErrorIs(t, (&Card{Name: " ", Type: Teacher}).Validate(), ErrInvalidCard)
}
