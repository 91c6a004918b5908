package grading

import "testing"

func TestAggregate(t *testing.T) {
	tests := []struct {
		name       string
		correct    int
		total      int
		threshold  float64
		percentage float64
		status     Status
	}{
		{name: "all correct", correct: 4, total: 4, percentage: 100, status: StatusPassed},
		{name: "exactly at default threshold", correct: 5, total: 10, percentage: 50, status: StatusPassed},
		{name: "just below default threshold", correct: 4, total: 10, percentage: 40, status: StatusFailed},
		{name: "zero total never divides", correct: 0, total: 0, percentage: 0, status: StatusFailed},
		{name: "custom threshold passes", correct: 4, total: 10, threshold: 40, percentage: 40, status: StatusPassed},
		{name: "custom threshold fails", correct: 7, total: 10, threshold: 75, percentage: 70, status: StatusFailed},
		{name: "zero threshold falls back to default", correct: 4, total: 10, threshold: 0, percentage: 40, status: StatusFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pct, status := Aggregate(tc.correct, tc.total, tc.threshold)
			if pct != tc.percentage {
				t.Fatalf("percentage = %v, want %v", pct, tc.percentage)
			}
			if status != tc.status {
				t.Fatalf("status = %v, want %v", status, tc.status)
			}
		})
	}
}

func TestGradeUnansweredCountAgainstScore(t *testing.T) {
	questions := make([]Question, 0, 10)
	for i := 0; i < 10; i++ {
		questions = append(questions, Question{
			ID:            string(rune('a' + i)),
			Type:          TrueFalse,
			CorrectAnswer: "true",
		})
	}

	// 只答了 6 题，全对
	responses := map[string]interface{}{}
	for i := 0; i < 6; i++ {
		responses[string(rune('a'+i))] = "true"
	}

	r := Grade(questions, responses, 0)
	if r.TotalScore != 6 || r.TotalPossible != 10 {
		t.Fatalf("score = %d/%d, want 6/10", r.TotalScore, r.TotalPossible)
	}
	if r.Percentage != 60 {
		t.Fatalf("percentage = %v, want 60", r.Percentage)
	}
	if r.Status != StatusPassed {
		t.Fatalf("status = %v, want passed", r.Status)
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	r := Grade(nil, map[string]interface{}{}, 0)
	if r.Percentage != 0 || r.Status != StatusFailed {
		t.Fatalf("empty quiz must yield 0%%/failed, got %v/%v", r.Percentage, r.Status)
	}
}

func TestGradeEndToEnd(t *testing.T) {
	questions := []Question{
		{ID: "1", Type: Single, Choices: []Choice{
			{ID: "6", Text: "Mars"},
			{ID: "7", Text: "Earth", IsCorrect: true},
		}},
		{ID: "2", Type: Multi, Choices: []Choice{
			{ID: "3", Text: "Red", IsCorrect: true},
			{ID: "4", Text: "Green"},
			{ID: "5", Text: "Blue", IsCorrect: true},
		}},
		{ID: "3", Type: Identification, CorrectAnswer: "Paris"},
		{ID: "4", Type: TrueFalse, CorrectAnswer: "true"},
	}

	responses := map[string]interface{}{
		"1": float64(7),
		"2": []interface{}{float64(5), float64(3)},
		"3": "  paris ",
		"4": "yes",
	}

	r := Grade(questions, responses, 0)
	if r.TotalScore != 4 || r.TotalPossible != 4 {
		t.Fatalf("score = %d/%d, want 4/4", r.TotalScore, r.TotalPossible)
	}
	if r.Percentage != 100 {
		t.Fatalf("percentage = %v, want 100", r.Percentage)
	}
	if r.Status != StatusPassed {
		t.Fatalf("status = %v, want passed", r.Status)
	}
}
