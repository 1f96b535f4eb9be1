package bitcoin

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const pathRoot = "m"

// PathIndexToString formats an index, with hardened indexes written as "n'".
func PathIndexToString(index uint32) string {
	if index < Hardened {
		return strconv.FormatUint(uint64(index), 10)
	}

	return strconv.FormatUint(uint64(index-Hardened), 10) + "'"
}

func PathToString(path []uint32) string {
	var b strings.Builder
	b.WriteString(pathRoot)
	for _, index := range path {
		b.WriteByte('/')
		b.WriteString(PathIndexToString(index))
	}

	return b.String()
}

// PathIndexFromString parses "n" as a normal index and "n'", "nh", or "nH" as hardened. Hardened
// values must be below 2^31. Normal values can use the full 32 bits, which are hardened indexes
// when at or above Hardened.
func PathIndexFromString(s string) (uint32, error) {
	number := strings.TrimRight(s, "'hH")
	suffix := len(s) - len(number)
	if suffix > 1 {
		return 0, errors.Wrapf(ErrInvalidPath, "index suffix : %s", s)
	}

	value, err := strconv.ParseUint(number, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidPath, "index %s : %s", s, err)
	}
	index := uint32(value)

	if suffix == 0 {
		return index, nil
	}

	if index >= Hardened {
		return 0, errors.Wrapf(ErrInvalidPath, "hardened index out of range : %s", s)
	}

	return index + Hardened, nil
}

// PathFromString parses a path of indexes separated by "/", with an optional leading "m". "m"
// alone is the empty path.
func PathFromString(s string) ([]uint32, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil, errors.Wrap(ErrInvalidPath, "empty")
	}

	parts := strings.Split(s, "/")
	if parts[0] == pathRoot {
		parts = parts[1:]
	}

	result := make([]uint32, len(parts))
	for i, part := range parts {
		index, err := PathIndexFromString(part)
		if err != nil {
			return nil, errors.Wrapf(err, "path %s", s)
		}
		result[i] = index
	}

	return result, nil
}
