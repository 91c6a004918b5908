package grading

import (
	"encoding/json"
	"fmt"
)

// UnknownQuestionError 提交里出现了不属于该测验的题目ID。
type UnknownQuestionError struct {
	QuestionID string
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("question %s does not exist in this quiz", e.QuestionID)
}

// MalformedAnswerError 作答的结构与题型不符（区别于答错）。
type MalformedAnswerError struct {
	QuestionID string
	Reason     string
}

func (e *MalformedAnswerError) Error() string {
	return fmt.Sprintf("malformed answer for question %s: %s", e.QuestionID, e.Reason)
}

// ValidateShape 入库前的结构校验。只检查形态，不判断对错；
// 形态不符返回 MalformedAnswerError。
func ValidateShape(t QuestionType, questionID string, raw interface{}) error {
	switch t {
	case Single:
		switch raw.(type) {
		case string, float64, int, int64, json.Number:
			return nil
		}
		return &MalformedAnswerError{QuestionID: questionID, Reason: "single choice answer must be a single value"}

	case Multi:
		switch v := raw.(type) {
		case []interface{}:
			return nil
		case string:
			var decoded []interface{}
			if err := json.Unmarshal([]byte(v), &decoded); err == nil {
				return nil
			}
		}
		return &MalformedAnswerError{QuestionID: questionID, Reason: "multiple choice answer must be a list"}

	case Identification:
		if _, ok := raw.(string); ok {
			return nil
		}
		return &MalformedAnswerError{QuestionID: questionID, Reason: "identification answer must be text"}

	case TrueFalse:
		switch raw.(type) {
		case bool, string, float64, int, int64, json.Number:
			return nil
		}
		return &MalformedAnswerError{QuestionID: questionID, Reason: "true/false answer must be a boolean or text value"}

	default:
		// 未知题型不拦截提交，判分阶段按答错处理
		return nil
	}
}
