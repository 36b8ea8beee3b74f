package store

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cursor encoding for paged list queries. A cursor is the opaque position of
// the last row of a page: the row's timestamp and its id as a tie-break,
// serialized as "unixnano:id" and base64url-encoded.
//
// Decoding is deliberately tolerant: a malformed cursor decodes to "no
// cursor", so a corrupted token degrades to a scan from the start of the set
// instead of a hard failure.

func EncodeCursor(ts time.Time, id int64) string {
	payload := fmt.Sprintf("%d:%d", ts.UnixNano(), id)
	return base64.URLEncoding.EncodeToString([]byte(payload))
}

// DecodeCursor parses an opaque cursor. ok is false when the cursor is empty
// or unparseable, meaning the scan should start from the beginning.
func DecodeCursor(cursor string) (ts time.Time, id int64, ok bool) {
	if strings.TrimSpace(cursor) == "" {
		return time.Time{}, 0, false
	}

	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, 0, false
	}

	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, false
	}

	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, 0, false
	}

	id, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, false
	}

	return time.Unix(0, nanos).UTC(), id, true
}
