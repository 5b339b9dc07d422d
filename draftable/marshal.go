// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package draftable

import (
	"fmt"
)

// MarshalText returns the wire string for an export kind.
func (kind ExportKind) MarshalText() ([]byte, error) {
	switch kind {
	case SinglePageExport:
		return []byte("single_page"), nil
	case CombinedExport:
		return []byte("combined"), nil
	case LeftExport:
		return []byte("left"), nil
	case RightExport:
		return []byte("right"), nil
	default:
		return nil, fmt.Errorf("invalid export kind (marshal, %d)", int(kind))
	}
}

// UnmarshalText populates an export kind from its wire string.
func (kind *ExportKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "single_page":
		*kind = SinglePageExport
	case "combined":
		*kind = CombinedExport
	case "left":
		*kind = LeftExport
	case "right":
		*kind = RightExport
	default:
		return fmt.Errorf("invalid export kind (unmarshal, %+v)", string(text))
	}
	return nil
}

// String returns the wire string for an export kind, or a
// recognizable placeholder for invalid values.
func (kind ExportKind) String() string {
	text, err := kind.MarshalText()
	if err != nil {
		return fmt.Sprintf("ExportKind(%d)", int(kind))
	}
	return string(text)
}
