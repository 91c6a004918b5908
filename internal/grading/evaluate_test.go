package grading

import "testing"

func singleQuestion() Question {
	return Question{
		ID:   "1",
		Type: Single,
		Choices: []Choice{
			{ID: "6", Text: "Mars"},
			{ID: "7", Text: "Earth", IsCorrect: true},
			{ID: "8", Text: "Venus"},
		},
	}
}

func TestEvaluateSingle(t *testing.T) {
	q := singleQuestion()

	tests := []struct {
		name string
		raw  interface{}
		want bool
	}{
		{name: "matches choice id number", raw: float64(7), want: true},
		{name: "matches choice id string", raw: "7", want: true},
		{name: "matches choice text", raw: "Earth", want: true},
		{name: "matches folded choice text", raw: "  EARTH ", want: true},
		{name: "wrong choice id", raw: float64(6), want: false},
		{name: "wrong text", raw: "Mars", want: false},
		{name: "list answer", raw: []interface{}{"7"}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(q, tc.raw); got != tc.want {
				t.Fatalf("IsCorrect = %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("no correct choice defined", func(t *testing.T) {
		broken := Question{ID: "1", Type: Single, Choices: []Choice{{ID: "7", Text: "Earth"}}}
		if IsCorrect(broken, "7") {
			t.Fatal("question without a correct choice must never grade correct")
		}
	})
}

func TestEvaluateMulti(t *testing.T) {
	q := Question{
		ID:   "2",
		Type: Multi,
		Choices: []Choice{
			{ID: "3", Text: "Red", IsCorrect: true},
			{ID: "4", Text: "Green"},
			{ID: "5", Text: "Blue", IsCorrect: true},
		},
	}

	tests := []struct {
		name string
		raw  interface{}
		want bool
	}{
		{name: "exact set in order", raw: []interface{}{float64(3), float64(5)}, want: true},
		{name: "exact set reversed", raw: []interface{}{float64(5), float64(3)}, want: true},
		{name: "subset is wrong", raw: []interface{}{float64(3)}, want: false},
		{name: "superset is wrong", raw: []interface{}{float64(3), float64(5), float64(4)}, want: false},
		{name: "empty is wrong", raw: []interface{}{}, want: false},
		{name: "text fallback", raw: []interface{}{"Red", "Blue"}, want: true},
		{name: "text fallback partial is wrong", raw: []interface{}{"Red"}, want: false},
		{name: "json encoded string", raw: `[5,3]`, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(q, tc.raw); got != tc.want {
				t.Fatalf("IsCorrect = %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("no correct choices defined", func(t *testing.T) {
		broken := Question{ID: "2", Type: Multi, Choices: []Choice{{ID: "3", Text: "Red"}}}
		if IsCorrect(broken, []interface{}{"3"}) {
			t.Fatal("question without correct choices must never grade correct")
		}
	})
}

func TestEvaluateIdentification(t *testing.T) {
	q := Question{ID: "3", Type: Identification, CorrectAnswer: "Mitochondria"}

	tests := []struct {
		name string
		raw  interface{}
		want bool
	}{
		{name: "exact", raw: "Mitochondria", want: true},
		{name: "lowercase", raw: "mitochondria", want: true},
		{name: "padded", raw: " Mitochondria ", want: true},
		{name: "uppercase", raw: "MITOCHONDRIA", want: true},
		{name: "different word", raw: "mitochondrion", want: false},
		{name: "empty", raw: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(q, tc.raw); got != tc.want {
				t.Fatalf("IsCorrect = %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("falls back to correct choice text", func(t *testing.T) {
		legacy := Question{
			ID:      "3",
			Type:    Identification,
			Choices: []Choice{{ID: "9", Text: "Paris", IsCorrect: true}},
		}
		if !IsCorrect(legacy, "  paris ") {
			t.Fatal("legacy choice-backed answer key must still grade")
		}
	})

	t.Run("no answer key at all", func(t *testing.T) {
		broken := Question{ID: "3", Type: Identification}
		if IsCorrect(broken, "") {
			t.Fatal("empty against empty must not grade correct")
		}
	})
}

func TestEvaluateTrueFalse(t *testing.T) {
	q := Question{ID: "4", Type: TrueFalse, CorrectAnswer: "true"}

	tests := []struct {
		name string
		raw  interface{}
		want bool
	}{
		{name: "bool true", raw: true, want: true},
		{name: "string true", raw: "true", want: true},
		{name: "string TRUE", raw: "TRUE", want: true},
		{name: "string 1", raw: "1", want: true},
		{name: "string yes", raw: "yes", want: true},
		{name: "string false", raw: "false", want: false},
		{name: "string 0", raw: "0", want: false},
		{name: "empty string", raw: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(q, tc.raw); got != tc.want {
				t.Fatalf("IsCorrect = %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("correct answer false", func(t *testing.T) {
		qf := Question{ID: "4", Type: TrueFalse, CorrectAnswer: "false"}
		if !IsCorrect(qf, "nope") {
			t.Fatal("non-truthy answer must match a false key")
		}
		if IsCorrect(qf, "yes") {
			t.Fatal("truthy answer must not match a false key")
		}
	})

	t.Run("missing answer key", func(t *testing.T) {
		broken := Question{ID: "4", Type: TrueFalse}
		if IsCorrect(broken, "false") {
			t.Fatal("question without an answer key must never grade correct")
		}
	})
}

func TestEvaluateUnknownType(t *testing.T) {
	q := Question{ID: "5", Type: QuestionType("essay"), CorrectAnswer: "anything"}
	if IsCorrect(q, "anything") {
		t.Fatal("unknown question types must fail closed")
	}
}
