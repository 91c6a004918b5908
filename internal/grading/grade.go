package grading

// Result 一次提交的评分汇总。
type Result struct {
	TotalScore    int
	TotalPossible int
	Percentage    float64
	Status        Status
}

// IsCorrect 归一化并判分，提交链路与报表链路共用的唯一入口。
func IsCorrect(q Question, raw interface{}) bool {
	return Evaluate(q, Normalize(q.Type, raw))
}

// Grade 对整份提交判分。
// 测验的所有题目都计入 TotalPossible；未作答的题计入总数但不得分。
func Grade(questions []Question, responses map[string]interface{}, threshold float64) Result {
	r := Result{TotalPossible: len(questions)}

	for _, q := range questions {
		raw, answered := responses[q.ID]
		if !answered {
			continue
		}
		if IsCorrect(q, raw) {
			r.TotalScore++
		}
	}

	r.Percentage, r.Status = Aggregate(r.TotalScore, r.TotalPossible, threshold)
	return r
}
