package grading

import "strings"

// Evaluate 判定归一化后的作答是否正确。
// 未知题型、不可判分的题目定义、不可归一化的作答一律返回 false，
// 绝不因单道坏题让整次提交失败。
func Evaluate(q Question, na NormalizedAnswer) bool {
	if na.Ungradable {
		return false
	}

	switch q.Type {
	case Single:
		return evaluateSingle(q, na)
	case Multi:
		return evaluateMulti(q, na)
	case Identification:
		return evaluateIdentification(q, na)
	case TrueFalse:
		return evaluateTrueFalse(q, na)
	default:
		return false
	}
}

func evaluateSingle(q Question, na NormalizedAnswer) bool {
	correct, ok := correctChoice(q)
	if !ok {
		return false
	}

	foldedText := FoldText(correct.Text)
	for _, cand := range na.Candidates {
		if cand == correct.ID {
			return true
		}
		// 文本形式的兼容匹配
		if foldedText != "" && FoldText(cand) == foldedText {
			return true
		}
	}
	return false
}

func evaluateMulti(q Question, na NormalizedAnswer) bool {
	ids := make(map[string]struct{})
	texts := make(map[string]struct{})
	for _, c := range q.Choices {
		if !c.IsCorrect {
			continue
		}
		ids[c.ID] = struct{}{}
		if ft := FoldText(c.Text); ft != "" {
			texts[ft] = struct{}{}
		}
	}
	if len(ids) == 0 {
		return false
	}

	// 精确集合相等，没有部分给分
	if setEqual(na.Set, ids) {
		return true
	}

	folded := make([]string, len(na.Set))
	for i, s := range na.Set {
		folded[i] = FoldText(s)
	}
	return len(texts) > 0 && setEqual(folded, texts)
}

func evaluateIdentification(q Question, na NormalizedAnswer) bool {
	key := strings.TrimSpace(q.CorrectAnswer)
	if key == "" {
		// 兼容旧数据：标准答案落在正确选项的文本里
		if c, ok := correctChoice(q); ok {
			key = c.Text
		}
	}
	if strings.TrimSpace(key) == "" {
		return false
	}
	return na.Text != "" && na.Text == NormalizeFreeText(key)
}

func evaluateTrueFalse(q Question, na NormalizedAnswer) bool {
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return false
	}
	return na.Bool == Truthy(q.CorrectAnswer)
}

func correctChoice(q Question) (Choice, bool) {
	for _, c := range q.Choices {
		if c.IsCorrect {
			return c, true
		}
	}
	return Choice{}, false
}

func setEqual(list []string, set map[string]struct{}) bool {
	if len(list) != len(set) {
		return false
	}
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		if _, ok := set[s]; !ok {
			return false
		}
		seen[s] = struct{}{}
	}
	return len(seen) == len(set)
}
