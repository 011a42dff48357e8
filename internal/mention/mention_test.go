package mention

import (
	"testing"

	"github.com/memonote/memonote-backend/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		ids      []int64
		expected string
	}{
		{name: "empty set", ids: nil, expected: ""},
		{name: "single id", ids: []int64{7}, expected: "#7,"},
		{name: "multiple ids", ids: []int64{3, 7, 42}, expected: "#3,#7,#42,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.ids)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, encoded)
		})
	}
}

func TestEncodeRejectsInvalidIDs(t *testing.T) {
	for _, id := range []int64{0, -1, -42} {
		_, err := Encode([]int64{7, id})
		assert.ErrorIs(t, err, common.ErrInvalidMention)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	sets := [][]int64{
		nil,
		{1},
		{1, 2, 3},
		{11, 1, 111},
		{9223372036854775807},
	}

	for _, ids := range sets {
		encoded, err := Encode(ids)
		assert.NoError(t, err)

		decoded, err := Decode(encoded)
		assert.NoError(t, err)
		assert.Equal(t, ids, decoded)

		// Every member matches, per the membership contract.
		for _, id := range ids {
			assert.True(t, Matches(encoded, id), "id %d should match %q", id, encoded)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, encoded := range []string{"7,", "#x,", "#-3,", "#0,"} {
		_, err := Decode(encoded)
		assert.ErrorIs(t, err, common.ErrInvalidMention, "input %q", encoded)
	}
}

// No encoded id may substring-match a different id: {1} must not match
// a query for 11, and {11} must not match a query for 1.
func TestNoPrefixCollisions(t *testing.T) {
	encoded, err := Encode([]int64{1})
	assert.NoError(t, err)
	assert.True(t, Matches(encoded, 1))
	assert.False(t, Matches(encoded, 11))

	encoded, err = Encode([]int64{11})
	assert.NoError(t, err)
	assert.True(t, Matches(encoded, 11))
	assert.False(t, Matches(encoded, 1))

	encoded, err = Encode([]int64{12, 123})
	assert.NoError(t, err)
	assert.True(t, Matches(encoded, 12))
	assert.True(t, Matches(encoded, 123))
	assert.False(t, Matches(encoded, 2))
	assert.False(t, Matches(encoded, 23))
	assert.False(t, Matches(encoded, 1))
}

func TestMatchesNonMembers(t *testing.T) {
	encoded, err := Encode([]int64{3, 7})
	assert.NoError(t, err)

	assert.False(t, Matches(encoded, 5))
	assert.False(t, Matches(encoded, 37))
	assert.False(t, Matches("", 3))
	assert.False(t, Matches(encoded, 0))
	assert.False(t, Matches(encoded, -3))
}
