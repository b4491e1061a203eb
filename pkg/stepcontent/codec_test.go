package stepcontent

import (
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind Kind
	}{
		{
			name:     "freeform text stays raw",
			raw:      "I noticed churn spikes after the second invoice.",
			wantKind: KindRaw,
		},
		{
			name:     "json object is structured",
			raw:      `{"label":"Churn","value":12}`,
			wantKind: KindStructured,
		},
		{
			name:     "json array is structured",
			raw:      `["first driver","second driver"]`,
			wantKind: KindStructured,
		},
		{
			name:     "scalar json stays raw",
			raw:      "42",
			wantKind: KindRaw,
		},
		{
			name:     "corrupt json stays raw",
			raw:      `{"label": "unterminated`,
			wantKind: KindRaw,
		},
		{
			name:     "leading whitespace before object",
			raw:      "  {\"name\":\"x\"}",
			wantKind: KindStructured,
		},
		{
			name:     "empty string stays raw",
			raw:      "",
			wantKind: KindRaw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw)
			if got.Kind != tt.wantKind {
				t.Errorf("Decode(%q).Kind = %v, want %v", tt.raw, got.Kind, tt.wantKind)
			}
			if got.Raw != tt.raw {
				t.Errorf("Decode(%q).Raw = %q, original must be preserved", tt.raw, got.Raw)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	encoded, err := Encode(map[string]interface{}{
		"label": "Signup conversion",
		"value": 3.5,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	value := Decode(encoded)
	if value.Kind != KindStructured {
		t.Fatalf("expected structured after encode, got kind %v", value.Kind)
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "raw passes through",
			raw:  "plain answer",
			want: "plain answer",
		},
		{
			name: "array renders as bullet lines",
			raw:  `["first","second"]`,
			want: "- first\n- second",
		},
		{
			name: "object leads with preferred key",
			raw:  `{"weight":2,"label":"Retention"}`,
			want: "Retention, weight: 2",
		},
		{
			name: "nested array of objects",
			raw:  `[{"name":"Start"},{"name":"Checkout"}]`,
			want: "- Start\n- Checkout",
		},
		{
			name: "booleans render as words",
			raw:  `{"label":"Blocked","done":false}`,
			want: "Blocked, done: no",
		},
		{
			name: "empty array renders empty",
			raw:  `[]`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.raw).Flatten(); got != tt.want {
				t.Errorf("Flatten() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	if !Decode("   ").IsEmpty() {
		t.Error("whitespace-only content should be empty")
	}
	if !Decode(`[]`).IsEmpty() {
		t.Error("empty structured array should be empty")
	}
	if Decode("something").IsEmpty() {
		t.Error("non-blank raw content should not be empty")
	}
}
