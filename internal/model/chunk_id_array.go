package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// ChunkIDArray maps a []int64 onto a Postgres bigint[] column using the
// brace-delimited literal form, e.g. {1,4,7}.
type ChunkIDArray []int64

func (a ChunkIDArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	parts := make([]string, len(a))
	for i, id := range a {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

func (a *ChunkIDArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}

	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("chunk id array: unsupported source type %T", src)
	}

	s = strings.Trim(s, "{}")
	if s == "" {
		*a = ChunkIDArray{}
		return nil
	}

	parts := strings.Split(s, ",")
	ids := make(ChunkIDArray, len(parts))
	for i, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return fmt.Errorf("chunk id array: parse %q: %w", p, err)
		}
		ids[i] = id
	}
	*a = ids
	return nil
}

func (ChunkIDArray) GormDataType() string {
	return "bigint[]"
}
