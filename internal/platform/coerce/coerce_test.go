package coerce

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt_MalformedInputsAreAbsent(t *testing.T) {
	t.Parallel()

	for _, input := range []any{nil, "", "nan", "NaN", math.NaN(), "not a number", struct{}{}} {
		assert.Nil(t, Int(input), "input=%v", input)
	}
}

func TestInt_TruncatesThroughFloat(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		input any
		want  int64
	}{
		"string with fractional zero": {"4.0", 4},
		"string truncates not rounds": {"4.7", 4},
		"plain numeric string":        {"12", 12},
		"native float":                {float64(7.9), 7},
		"native int":                  {42, 42},
		"bool true":                   {true, 1},
		"negative string":             {"-3.2", -3},
	}
	for name, tc := range cases {
		got := Int(tc.input)
		require.NotNil(t, got, name)
		assert.Equal(t, tc.want, *got, name)
	}
}

func TestFloat(t *testing.T) {
	t.Parallel()

	if got := Float("3.5"); got == nil || *got != 3.5 {
		t.Fatalf("Float(\"3.5\") = %v, want 3.5", got)
	}
	if got := Float(math.NaN()); got != nil {
		t.Fatalf("Float(NaN) = %v, want nil", got)
	}
	if got := Float(""); got != nil {
		t.Fatalf("Float(\"\") = %v, want nil", got)
	}
}

func TestBool(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input any
		want  *bool
	}{
		{nil, nil},
		{"", nil},
		{true, boolPtr(true)},
		{false, boolPtr(false)},
		{"True", boolPtr(true)},
		{"FALSE", boolPtr(false)},
		{"yes", boolPtr(false)},
		{float64(0), boolPtr(false)},
		{float64(2), boolPtr(true)},
	}
	for _, tc := range cases {
		got := Bool(tc.input)
		if tc.want == nil {
			assert.Nil(t, got, "input=%v", tc.input)
			continue
		}
		require.NotNil(t, got, "input=%v", tc.input)
		assert.Equal(t, *tc.want, *got, "input=%v", tc.input)
	}
}

func TestString_TrimsAndAbsents(t *testing.T) {
	t.Parallel()

	if got := String("  Salah  "); got == nil || *got != "Salah" {
		t.Fatalf("String trim = %v, want Salah", got)
	}
	if got := String("   "); got != nil {
		t.Fatalf("String(whitespace) = %v, want nil", got)
	}
	if got := String(nil); got != nil {
		t.Fatalf("String(nil) = %v, want nil", got)
	}
	if got := String(float64(10)); got == nil || *got != "10" {
		t.Fatalf("String(10) = %v, want \"10\"", got)
	}
}

func TestTime(t *testing.T) {
	t.Parallel()

	got := Time("2025-08-16T14:00:00Z")
	require.NotNil(t, got)
	want := time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want), "got %v", got)

	assert.Nil(t, Time(""))
	assert.Nil(t, Time("not a timestamp"))
	assert.Nil(t, Time(nil))
}

func TestLiteral_ParsesSerializedList(t *testing.T) {
	t.Parallel()

	got := Literal("[{'a': 1}]")
	list, ok := got.([]any)
	require.True(t, ok, "got %T", got)
	require.Len(t, list, 1)

	record, ok := list[0].(map[string]any)
	require.True(t, ok, "got %T", list[0])
	assert.Equal(t, int64(1), record["a"])
}

func TestLiteral_KeepsUnparseableText(t *testing.T) {
	t.Parallel()

	if got := Literal("not a list"); got != "not a list" {
		t.Fatalf("Literal(\"not a list\") = %v, want the string unchanged", got)
	}
}

func TestLiteral_PassThroughAndAbsent(t *testing.T) {
	t.Parallel()

	structured := []any{map[string]any{"x": 1}}
	assert.Equal(t, structured, Literal(structured))
	assert.Nil(t, Literal(nil))
	assert.Nil(t, Literal("  "))
}

func TestParseLiteral_Shapes(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"[]":                     []any{},
		"[1, 2, 3]":              []any{int64(1), int64(2), int64(3)},
		"{'k': 'v'}":             map[string]any{"k": "v"},
		"{'n': None}":            map[string]any{"n": nil},
		"[True, False]":          []any{true, false},
		"('a', 1.5)":             []any{"a", 1.5},
		"{'risk': [{'p': 90}]}":  map[string]any{"risk": []any{map[string]any{"p": int64(90)}}},
		"'it\\'s fine'":          "it's fine",
		"[{'a': 1}, {'a': 2},]":  []any{map[string]any{"a": int64(1)}, map[string]any{"a": int64(2)}},
	}
	for input, want := range cases {
		got, err := parseLiteral(input)
		require.NoError(t, err, "input=%s", input)
		assert.Equal(t, want, got, "input=%s", input)
	}

	for _, bad := range []string{"[1", "{'a' 1}", "call()", "1 + 2", "'unterminated"} {
		if _, err := parseLiteral(bad); err == nil {
			t.Fatalf("parseLiteral(%q) succeeded, want error", bad)
		}
	}
}

func boolPtr(v bool) *bool { return &v }
