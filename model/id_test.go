package model

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPseudoIDToPointID(t *testing.T) {
	u := uuid.MustParse("8f1c9b8e-4d3a-4f0e-9a5e-2c7b1d6e3f40")

	parsable := []struct {
		name  string
		value PseudoID
		want  PointID
	}{
		{"existing_uuid", PseudoText(u.String()), UUIDID(u)},
		{"upper_uuid", PseudoText(strings.ToUpper(u.String())), UUIDID(u)},
		{"zero_int", PseudoInt(0), NumID(0)},
		{"positive_int", PseudoInt(1), NumID(1)},
		{"existing_uint", PseudoUint(999), NumID(999)},
		{"max_uint", PseudoUint(math.MaxUint64), NumID(math.MaxUint64)},
	}
	for _, tc := range parsable {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.value.PointID()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	nonParsable := []struct {
		name  string
		value PseudoID
	}{
		{"negative_int", PseudoInt(-1)},
		{"min_int", PseudoInt(math.MinInt64)},
		{"non_uuid_string", PseudoText("not a uuid")},
		{"numeric_string", PseudoText("42")},
		{"empty_string", PseudoText("")},
	}
	for _, tc := range nonParsable {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.value.PointID()
			assert.ErrorIs(t, err, ErrInvalidPointID)
		})
	}
}

func TestPseudoFromPointID(t *testing.T) {
	u := uuid.MustParse("8F1C9B8E-4D3A-4F0E-9A5E-2C7B1D6E3F40")

	assert.Equal(t, PseudoUint(7), PseudoFromPointID(NumID(7)))
	assert.Equal(t, PseudoText("8f1c9b8e-4d3a-4f0e-9a5e-2c7b1d6e3f40"), PseudoFromPointID(UUIDID(u)))

	for _, p := range []PointID{NumID(0), NumID(12345), UUIDID(u)} {
		back, err := PseudoFromPointID(p).PointID()
		require.NoError(t, err)
		assert.Equal(t, p, back)
	}
}

func TestPseudoIntEqualsPseudoUint(t *testing.T) {
	m := map[PseudoID]int{PseudoUint(5): 1}
	assert.Equal(t, 1, m[PseudoInt(5)])
	assert.NotEqual(t, PseudoInt(5), PseudoText("5"))
}

func TestParsePseudoID(t *testing.T) {
	cases := []struct {
		in   any
		want PseudoID
	}{
		{3, PseudoUint(3)},
		{int64(-4), PseudoInt(-4)},
		{uint32(9), PseudoUint(9)},
		{float64(12), PseudoUint(12)},
		{float64(-2), PseudoInt(-2)},
		{json.Number("18446744073709551615"), PseudoUint(math.MaxUint64)},
		{json.Number("-7"), PseudoInt(-7)},
		{json.Number("1e3"), PseudoUint(1000)},
		{json.Number("-2.0"), PseudoInt(-2)},
		{"abc", PseudoText("abc")},
	}
	for _, tc := range cases {
		got, err := ParsePseudoID(tc.in)
		require.NoError(t, err, "%v", tc.in)
		assert.Equal(t, tc.want, got)
	}

	for _, bad := range []any{1.5, json.Number("1.5"), json.Number("1e400"), true, nil, []int{1}} {
		_, err := ParsePseudoID(bad)
		assert.ErrorIs(t, err, ErrInvalidPointID, "%v", bad)
	}
}

func TestPseudoIDJSON(t *testing.T) {
	var ids []PseudoID
	require.NoError(t, json.Unmarshal([]byte(`[1, -2, "x", "8f1c9b8e-4d3a-4f0e-9a5e-2c7b1d6e3f40"]`), &ids))
	assert.Equal(t, []PseudoID{
		PseudoUint(1),
		PseudoInt(-2),
		PseudoText("x"),
		PseudoText("8f1c9b8e-4d3a-4f0e-9a5e-2c7b1d6e3f40"),
	}, ids)

	b, err := json.Marshal(ids)
	require.NoError(t, err)
	assert.JSONEq(t, `[1, -2, "x", "8f1c9b8e-4d3a-4f0e-9a5e-2c7b1d6e3f40"]`, string(b))

	var bad PseudoID
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &bad))
}

func TestPseudoIDJSONIntegralNumbers(t *testing.T) {
	for _, in := range []string{`1000`, `1000.0`, `1e3`, `1.0e3`} {
		var got PseudoID
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.Equal(t, PseudoUint(1000), got, in)

		var decoded any
		require.NoError(t, json.Unmarshal([]byte(in), &decoded))
		viaAny, err := ParsePseudoID(decoded)
		require.NoError(t, err, in)
		assert.Equal(t, got, viaAny, in)
	}

	var neg PseudoID
	require.NoError(t, json.Unmarshal([]byte(`-3e0`), &neg))
	assert.Equal(t, PseudoInt(-3), neg)
}

func TestPointIDJSON(t *testing.T) {
	var ids []PointID
	require.NoError(t, json.Unmarshal([]byte(`[10, "8f1c9b8e-4d3a-4f0e-9a5e-2c7b1d6e3f40"]`), &ids))
	require.Len(t, ids, 2)
	assert.Equal(t, NumID(10), ids[0])
	assert.True(t, ids[1].IsUUID())

	b, err := json.Marshal(ids)
	require.NoError(t, err)
	assert.JSONEq(t, `[10, "8f1c9b8e-4d3a-4f0e-9a5e-2c7b1d6e3f40"]`, string(b))

	var bad PointID
	assert.ErrorIs(t, json.Unmarshal([]byte(`-1`), &bad), ErrInvalidPointID)
}

func TestParsePointID(t *testing.T) {
	p, err := ParsePointID("42")
	require.NoError(t, err)
	assert.Equal(t, NumID(42), p)

	p, err = ParsePointID("8f1c9b8e-4d3a-4f0e-9a5e-2c7b1d6e3f40")
	require.NoError(t, err)
	assert.Equal(t, "8f1c9b8e-4d3a-4f0e-9a5e-2c7b1d6e3f40", p.String())

	_, err = ParsePointID("-1")
	assert.ErrorIs(t, err, ErrInvalidPointID)
}

func TestAppendBinaryDistinguishesKinds(t *testing.T) {
	var zero uuid.UUID
	assert.NotEqual(t, NumID(0).AppendBinary(nil), UUIDID(zero).AppendBinary(nil))
	assert.Len(t, NumID(1).AppendBinary(nil), 9)
	assert.Len(t, UUIDID(zero).AppendBinary(nil), 17)
}
