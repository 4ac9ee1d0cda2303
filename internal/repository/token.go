package repository

import (
	"encoding/base64"
	"strconv"

	"practice-log/internal/errors"
)

// EncodeOffsetToken turns a row offset into an opaque next-page token.
// Offsets of zero or less mean there is no further page.
func EncodeOffsetToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// DecodeOffsetToken is the inverse of EncodeOffsetToken. An empty token
// decodes to offset 0.
func DecodeOffsetToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, errors.NewInvalidInputError("nextToken", token, "malformed pagination token")
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0, errors.NewInvalidInputError("nextToken", token, "malformed pagination token")
	}
	return offset, nil
}
