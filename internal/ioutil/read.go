package ioutil

import (
	"fmt"
	"io"
	"strings"
)

// truncatedSuffix marks a snippet cut at its limit
const truncatedSuffix = "...(truncated)"

// ReadLimited returns at most limit bytes of r as a string, for putting
// upstream response bodies in debug logs. Longer input is cut and marked
// with a suffix. Control characters are replaced so a hostile body cannot
// forge extra log lines. A read failure is described instead of dropped.
func ReadLimited(r io.Reader, limit int64) string {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return fmt.Sprintf("<unreadable: %v>", err)
	}

	truncated := int64(len(body)) > limit
	if truncated {
		body = body[:limit]
	}

	snippet := strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' {
			return ' '
		}
		return r
	}, string(body))

	if truncated {
		snippet += truncatedSuffix
	}
	return snippet
}
