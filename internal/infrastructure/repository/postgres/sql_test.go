package postgres

import "testing"

func TestJSONValue(t *testing.T) {
	out, err := jsonValue(nil)
	if err != nil {
		t.Fatalf("jsonValue(nil): %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil for nil input, got %q", *out)
	}

	out, err = jsonValue([]any{map[string]any{"a": int64(1)}})
	if err != nil {
		t.Fatalf("jsonValue: %v", err)
	}
	if out == nil || *out != `[{"a":1}]` {
		t.Fatalf("unexpected encoding: %v", out)
	}

	out, err = jsonValue("kept as string")
	if err != nil {
		t.Fatalf("jsonValue: %v", err)
	}
	if out == nil || *out != `"kept as string"` {
		t.Fatalf("unexpected encoding: %v", out)
	}
}
