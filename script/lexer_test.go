package script

import (
	"reflect"
	"testing"
)

func TestScanFieldsBareWords(t *testing.T) {
	fields, err := scanFields("analyze the bottlenecks")
	if err != nil {
		t.Fatalf("scanFields() returned error: %v", err)
	}
	want := []field{{text: "analyze"}, {text: "the"}, {text: "bottlenecks"}}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("scanFields() = %+v, want %+v", fields, want)
	}
}

func TestScanFieldsQuotedPreservesWhitespace(t *testing.T) {
	fields, err := scanFields(`remember("  two  spaces  ") as "tag"`)
	if err != nil {
		t.Fatalf("scanFields() returned error: %v", err)
	}
	if len(fields) != 6 {
		t.Fatalf("len(fields) = %d, want 6", len(fields))
	}
	if !fields[2].quoted || fields[2].text != "  two  spaces  " {
		t.Errorf("fields[2] = %+v, want quoted with whitespace intact", fields[2])
	}
}

func TestScanFieldsPunctuation(t *testing.T) {
	fields, err := scanFields("greet(a, b):")
	if err != nil {
		t.Fatalf("scanFields() returned error: %v", err)
	}
	var texts []string
	for _, f := range fields {
		texts = append(texts, f.text)
	}
	want := []string{"greet", "(", "a", ",", "b", ")", ":"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("field texts = %v, want %v", texts, want)
	}
}

func TestScanFieldsUnterminatedString(t *testing.T) {
	if _, err := scanFields(`goal: "never closed`); err == nil {
		t.Error("scanFields() should fail on unterminated string")
	}
}

func TestSplitMeta(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantValue string
		wantMeta  map[string]string
	}{
		{"quoted value with meta", `"improve performance" priority: high`, "improve performance", map[string]string{"priority": "high"}},
		{"bare value with meta", "improve performance priority: high", "improve performance", map[string]string{"priority": "high"}},
		{"no meta", "mistral", "mistral", nil},
		{"two pairs", "mistral temperature: 0.2 seed: 7", "mistral", map[string]string{"temperature": "0.2", "seed": "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := scanFields(tt.line)
			if err != nil {
				t.Fatalf("scanFields() returned error: %v", err)
			}
			value, meta := splitMeta(fields)
			if got := joinValue(value); got != tt.wantValue {
				t.Errorf("value = %q, want %q", got, tt.wantValue)
			}
			if !reflect.DeepEqual(meta, tt.wantMeta) {
				t.Errorf("meta = %v, want %v", meta, tt.wantMeta)
			}
		})
	}
}
