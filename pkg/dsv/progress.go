package dsv

import "fmt"

// NoIndex marks a record or field index that is not known at the point an event fires.
const NoIndex = -1

// Progress locates an event or error in the input.
//
// Bytes is zero when the character source cannot report bytes consumed (for example
// when parsing an in-memory string). Record and Field are zero-based and set to NoIndex
// when unknown.
type Progress struct {
	Bytes      uint64
	Characters uint64
	Record     int
	Field      int
}

// HasRecord reports whether the record index is known.
func (p Progress) HasRecord() bool {
	return p.Record != NoIndex
}

// HasField reports whether the field index is known.
func (p Progress) HasField() bool {
	return p.Field != NoIndex
}

// Matches compares two progress values loosely.
//
// Byte and character counts are always compared. Record and field indices are compared
// only when both sides know them, so a Progress built without indices matches any
// Progress at the same position. Use == for exact comparison.
func (p Progress) Matches(other Progress) bool {
	if p.Bytes != other.Bytes || p.Characters != other.Characters {
		return false
	}
	if p.HasRecord() && other.HasRecord() && p.Record != other.Record {
		return false
	}
	if p.HasField() && other.HasField() && p.Field != other.Field {
		return false
	}
	return true
}

// String returns a human-readable location such as "record 2, field 1 (character 17, byte 17)".
func (p Progress) String() string {
	var loc string
	switch {
	case p.HasRecord() && p.HasField():
		loc = fmt.Sprintf("record %d, field %d ", p.Record, p.Field)
	case p.HasRecord():
		loc = fmt.Sprintf("record %d ", p.Record)
	}
	return fmt.Sprintf("%s(character %d, byte %d)", loc, p.Characters, p.Bytes)
}
