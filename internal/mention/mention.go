// Package mention encodes the set of users mentioned in a comment into
// a compact string that the storage layer can filter with a LIKE query.
//
// Each id is rendered as "#<id>,". The sentinel prefix and separator
// suffix together make every encoded id unambiguous, so a pattern for
// id 1 ("%#1,%") can never match the encoding of id 11 ("#11,").
package mention

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/memonote/memonote-backend/internal/common"
)

// Encode renders a set of user ids in stored form ("#3,#7,").
// An empty set encodes as the empty string, which no pattern matches.
// Non-positive ids are rejected; ids are never silently dropped.
func Encode(userIDs []int64) (string, error) {
	if len(userIDs) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, id := range userIDs {
		if id <= 0 {
			return "", fmt.Errorf("%w: %d", common.ErrInvalidMention, id)
		}
		b.WriteByte('#')
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteByte(',')
	}
	return b.String(), nil
}

// Decode parses an encoded mention field back into user ids.
// Order follows the encoded string; membership is what matters.
func Decode(encoded string) ([]int64, error) {
	if encoded == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(encoded, ",") {
		if part == "" {
			continue
		}
		raw, ok := strings.CutPrefix(part, "#")
		if !ok {
			return nil, fmt.Errorf("%w: missing sentinel in %q", common.ErrInvalidMention, part)
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: %q", common.ErrInvalidMention, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Pattern returns the SQL LIKE pattern selecting rows that mention the
// given user, e.g. "%#7,%".
func Pattern(userID int64) string {
	return "%" + Token(userID) + "%"
}

// Token returns the delimited form of a single id, e.g. "#7,".
func Token(userID int64) string {
	return "#" + strconv.FormatInt(userID, 10) + ","
}

// Matches reports whether an encoded field mentions the given user.
// It is the in-process equivalent of a LIKE query with Pattern.
func Matches(encoded string, userID int64) bool {
	if encoded == "" || userID <= 0 {
		return false
	}
	return strings.Contains(encoded, Token(userID))
}
