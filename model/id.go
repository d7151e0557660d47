package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ErrInvalidPointID is returned when a value cannot be converted to a PointID.
var ErrInvalidPointID = errors.New("invalid point id")

type pointIDKind uint8

const (
	pointIDNum pointIDKind = iota
	pointIDUUID
)

// PointID is the canonical identifier of a stored point: either a
// non-negative integer or a UUID.
//
// PointID is comparable and can be used as a map key.
type PointID struct {
	kind pointIDKind
	num  uint64
	uuid uuid.UUID
}

// NumID returns an integer PointID.
func NumID(n uint64) PointID {
	return PointID{kind: pointIDNum, num: n}
}

// UUIDID returns a UUID PointID.
func UUIDID(u uuid.UUID) PointID {
	return PointID{kind: pointIDUUID, uuid: u}
}

// ParsePointID parses a decimal integer or a UUID string.
func ParsePointID(s string) (PointID, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return NumID(n), nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return PointID{}, fmt.Errorf("%w: %q", ErrInvalidPointID, s)
	}
	return UUIDID(u), nil
}

// IsUUID reports whether the id is a UUID.
func (p PointID) IsUUID() bool { return p.kind == pointIDUUID }

// Num returns the integer value and true if the id is an integer.
func (p PointID) Num() (uint64, bool) {
	return p.num, p.kind == pointIDNum
}

// UUID returns the UUID value and true if the id is a UUID.
func (p PointID) UUID() (uuid.UUID, bool) {
	return p.uuid, p.kind == pointIDUUID
}

// String returns the decimal number or the canonical UUID form.
func (p PointID) String() string {
	if p.kind == pointIDUUID {
		return p.uuid.String()
	}
	return strconv.FormatUint(p.num, 10)
}

// AppendBinary appends a stable binary form of the id to b.
// Integer and UUID ids never collide.
func (p PointID) AppendBinary(b []byte) []byte {
	if p.kind == pointIDUUID {
		b = append(b, byte(pointIDUUID))
		return append(b, p.uuid[:]...)
	}
	b = append(b, byte(pointIDNum))
	for i := 0; i < 8; i++ {
		b = append(b, byte(p.num>>(8*i)))
	}
	return b
}

// MarshalJSON encodes integer ids as numbers and UUIDs as strings.
func (p PointID) MarshalJSON() ([]byte, error) {
	if p.kind == pointIDUUID {
		return json.Marshal(p.uuid.String())
	}
	return []byte(strconv.FormatUint(p.num, 10)), nil
}

// UnmarshalJSON accepts a non-negative integer or a UUID string.
func (p *PointID) UnmarshalJSON(data []byte) error {
	var pseudo PseudoID
	if err := pseudo.UnmarshalJSON(data); err != nil {
		return err
	}
	id, err := pseudo.PointID()
	if err != nil {
		return err
	}
	*p = id
	return nil
}
