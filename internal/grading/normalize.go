package grading

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// NormalizedAnswer 某一题型下原始作答的规范形态。
// 只有与 Type 对应的字段有意义；Ungradable 表示无法归一化，判分时按答错处理。
type NormalizedAnswer struct {
	Type       QuestionType
	Candidates []string // single：原值字符串 + 去符号小写形式
	Set        []string // multi：字符串化去重后的无序集合（已排序）
	Text       string   // identification：归一化文本
	Bool       bool     // true_false
	Ungradable bool
}

// Normalize 把弱类型的原始作答转为该题型的规范形态。
// 对任何输入都不 panic：归一化失败返回 Ungradable。
func Normalize(t QuestionType, raw interface{}) NormalizedAnswer {
	switch t {
	case Single:
		return normalizeSingle(raw)
	case Multi:
		return normalizeMulti(raw)
	case Identification:
		return normalizeIdentification(raw)
	case TrueFalse:
		return normalizeTrueFalse(raw)
	default:
		return NormalizedAnswer{Type: t, Ungradable: true}
	}
}

func normalizeSingle(raw interface{}) NormalizedAnswer {
	s, ok := stringify(raw)
	if !ok || strings.TrimSpace(s) == "" {
		return NormalizedAnswer{Type: Single, Ungradable: true}
	}
	s = strings.TrimSpace(s)
	// 两个候选形态：选项ID的字符串形式，以及去掉非字母数字后小写的文本形式。
	// 存储侧的正确答案在不同链路里既可能是ID也可能是文本，两者都要能匹配。
	return NormalizedAnswer{
		Type:       Single,
		Candidates: []string{s, FoldText(s)},
	}
}

func normalizeMulti(raw interface{}) NormalizedAnswer {
	var entries []interface{}

	switch v := raw.(type) {
	case []interface{}:
		entries = v
	case string:
		// 兼容 JSON 编码的列表字符串
		var decoded []interface{}
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			entries = decoded
		} else {
			entries = []interface{}{v}
		}
	case nil:
		return NormalizedAnswer{Type: Multi, Ungradable: true}
	case map[string]interface{}:
		return NormalizedAnswer{Type: Multi, Ungradable: true}
	default:
		// 裸标量按单元素集合处理
		entries = []interface{}{v}
	}

	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		s, ok := stringify(e)
		if !ok {
			return NormalizedAnswer{Type: Multi, Ungradable: true}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)

	return NormalizedAnswer{Type: Multi, Set: out}
}

func normalizeIdentification(raw interface{}) NormalizedAnswer {
	s, ok := stringify(raw)
	if !ok {
		return NormalizedAnswer{Type: Identification, Ungradable: true}
	}
	return NormalizedAnswer{Type: Identification, Text: NormalizeFreeText(s)}
}

func normalizeTrueFalse(raw interface{}) NormalizedAnswer {
	switch v := raw.(type) {
	case bool:
		return NormalizedAnswer{Type: TrueFalse, Bool: v}
	case []interface{}, map[string]interface{}, nil:
		return NormalizedAnswer{Type: TrueFalse, Ungradable: true}
	default:
		s, ok := stringify(v)
		if !ok {
			return NormalizedAnswer{Type: TrueFalse, Ungradable: true}
		}
		return NormalizedAnswer{Type: TrueFalse, Bool: Truthy(s)}
	}
}

// NormalizeFreeText identification 题的文本归一化：
// 去首尾空白、转小写、内部连续空白折叠为单个空格。
// 学生作答与标准答案必须走同一条归一化路径。
func NormalizeFreeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// FoldText 去掉所有非字母数字字符并转小写，用于选项文本的宽松匹配。
func FoldText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truthy true_false 题的布尔化规则："true"、"1"、"yes"（忽略大小写）为真，其余为假。
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// stringify 把 JSON 解码出的标量转成字符串。列表、对象返回 false。
func stringify(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	case json.Number:
		return t.String(), true
	case bool:
		if t {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}
