// Package grading 实现测验作答的归一化、判分与汇总。
// 纯内存计算，不依赖存储与 HTTP 层；提交落库和报表统计共用这一套规则。
package grading

// QuestionType 题型，决定原始作答的形态与比较规则。
type QuestionType string

const (
	Single         QuestionType = "single"
	Multi          QuestionType = "multi"
	Identification QuestionType = "identification"
	TrueFalse      QuestionType = "true_false"
)

// KnownType 是否为受支持的题型。未知题型一律按错误处理（fail closed）。
func KnownType(t QuestionType) bool {
	switch t {
	case Single, Multi, Identification, TrueFalse:
		return true
	}
	return false
}

// Choice 选项。ID 为字符串形式，便于与 JSON 里的作答直接比较。
type Choice struct {
	ID        string
	Text      string
	IsCorrect bool
}

// Question 判分所需的题目定义。
// CorrectAnswer 用于 identification / true_false；Choices 用于 single / multi。
// 定义不完整（无正确选项、无标准答案）的题目视为不可判分：
// 计入总题数，永远不计为答对，但不会使整次提交失败。
type Question struct {
	ID            string
	Type          QuestionType
	CorrectAnswer string
	Choices       []Choice
}

// Status 及格状态
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// DefaultPassThreshold 默认及格线（百分比）。
const DefaultPassThreshold = 50.0
