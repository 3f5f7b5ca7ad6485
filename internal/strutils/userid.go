package strutils

import (
	"fmt"
	"strings"
)

const strippedUUIDLength = 32

// NormalizeUserID accepts a UUID with any dashes and casing and returns it in
// canonical lowercase dashed form
func NormalizeUserID(userID string) (string, error) {
	var stripped strings.Builder
	stripped.Grow(strippedUUIDLength)

	for _, char := range userID {
		switch {
		case char == '-':
			continue
		case '0' <= char && char <= '9', 'a' <= char && char <= 'f':
			stripped.WriteRune(char)
		case 'A' <= char && char <= 'F':
			stripped.WriteRune(char - 'A' + 'a')
		default:
			return "", fmt.Errorf("invalid character in user id. input: '%.50s'", userID)
		}
	}

	if stripped.Len() != strippedUUIDLength {
		return "", fmt.Errorf("user id has incorrect length. input: '%.50s'", userID)
	}

	s := stripped.String()
	return fmt.Sprintf("%s-%s-%s-%s-%s", s[0:8], s[8:12], s[12:16], s[16:20], s[20:32]), nil
}
