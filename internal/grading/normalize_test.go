package grading

import (
	"reflect"
	"testing"
)

func TestNormalizeSingle(t *testing.T) {
	tests := []struct {
		name       string
		raw        interface{}
		candidates []string
		ungradable bool
	}{
		{name: "choice id as number", raw: float64(7), candidates: []string{"7", "7"}},
		{name: "choice id as string", raw: "7", candidates: []string{"7", "7"}},
		{name: "text answer", raw: " Option A! ", candidates: []string{"Option A!", "optiona"}},
		{name: "empty string", raw: "", ungradable: true},
		{name: "list is not a single value", raw: []interface{}{"7"}, ungradable: true},
		{name: "nil", raw: nil, ungradable: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(Single, tc.raw)
			if got.Ungradable != tc.ungradable {
				t.Fatalf("Ungradable = %v, want %v", got.Ungradable, tc.ungradable)
			}
			if !tc.ungradable && !reflect.DeepEqual(got.Candidates, tc.candidates) {
				t.Fatalf("Candidates = %v, want %v", got.Candidates, tc.candidates)
			}
		})
	}
}

func TestNormalizeMulti(t *testing.T) {
	tests := []struct {
		name       string
		raw        interface{}
		set        []string
		ungradable bool
	}{
		{name: "list of numbers", raw: []interface{}{float64(3), float64(5)}, set: []string{"3", "5"}},
		{name: "order does not matter", raw: []interface{}{float64(5), float64(3)}, set: []string{"3", "5"}},
		{name: "duplicates collapse", raw: []interface{}{"3", "3", "5"}, set: []string{"3", "5"}},
		{name: "json encoded string", raw: `[3,5]`, set: []string{"3", "5"}},
		{name: "bare scalar becomes singleton", raw: float64(3), set: []string{"3"}},
		{name: "bare string becomes singleton", raw: "blue", set: []string{"blue"}},
		{name: "object is ungradable", raw: map[string]interface{}{"a": 1}, ungradable: true},
		{name: "nil is ungradable", raw: nil, ungradable: true},
		{name: "nested list is ungradable", raw: []interface{}{[]interface{}{"3"}}, ungradable: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(Multi, tc.raw)
			if got.Ungradable != tc.ungradable {
				t.Fatalf("Ungradable = %v, want %v", got.Ungradable, tc.ungradable)
			}
			if !tc.ungradable && !reflect.DeepEqual(got.Set, tc.set) {
				t.Fatalf("Set = %v, want %v", got.Set, tc.set)
			}
		})
	}
}

func TestNormalizeIdentification(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		text string
	}{
		{name: "lowercases", raw: "MITOCHONDRIA", text: "mitochondria"},
		{name: "trims", raw: "  Mitochondria  ", text: "mitochondria"},
		{name: "collapses internal whitespace", raw: "new   york \t city", text: "new york city"},
		{name: "number coerces to text", raw: float64(42), text: "42"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(Identification, tc.raw)
			if got.Ungradable {
				t.Fatal("unexpected ungradable")
			}
			if got.Text != tc.text {
				t.Fatalf("Text = %q, want %q", got.Text, tc.text)
			}
		})
	}
}

func TestNormalizeTrueFalse(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want bool
	}{
		{name: "bool true", raw: true, want: true},
		{name: "bool false", raw: false, want: false},
		{name: "string true", raw: "true", want: true},
		{name: "string TRUE", raw: "TRUE", want: true},
		{name: "string 1", raw: "1", want: true},
		{name: "string yes", raw: "yes", want: true},
		{name: "number 1", raw: float64(1), want: true},
		{name: "string false", raw: "false", want: false},
		{name: "string 0", raw: "0", want: false},
		{name: "empty string", raw: "", want: false},
		{name: "garbage", raw: "maybe", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(TrueFalse, tc.raw)
			if got.Ungradable {
				t.Fatal("unexpected ungradable")
			}
			if got.Bool != tc.want {
				t.Fatalf("Bool = %v, want %v", got.Bool, tc.want)
			}
		})
	}
}

// 归一化应当幂等：对已经规范化的值再走一遍流程，结果不变。
func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(Identification, "  New   York ")
	second := Normalize(Identification, first.Text)
	if first.Text != second.Text {
		t.Fatalf("normalize not idempotent: %q vs %q", first.Text, second.Text)
	}

	m1 := Normalize(Multi, []interface{}{"5", "3"})
	asAny := make([]interface{}, len(m1.Set))
	for i, s := range m1.Set {
		asAny[i] = s
	}
	m2 := Normalize(Multi, asAny)
	if !reflect.DeepEqual(m1.Set, m2.Set) {
		t.Fatalf("normalize not idempotent: %v vs %v", m1.Set, m2.Set)
	}
}

func TestUnknownTypeIsUngradable(t *testing.T) {
	got := Normalize(QuestionType("essay"), "anything")
	if !got.Ungradable {
		t.Fatal("unknown question type must be ungradable")
	}
}
