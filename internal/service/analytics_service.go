package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"school_backend/internal/grading"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
	"school_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const analyticsCacheTTL = 5 * time.Minute

type AnalyticsService struct {
	AnalyticsRepo *repository.AnalyticsRepository
	QuizRepo      *repository.QuizRepository
	Redis         *redis.Client
}

func NewAnalyticsService(analyticsRepo *repository.AnalyticsRepository, quizRepo *repository.QuizRepository, rdb *redis.Client) *AnalyticsService {
	return &AnalyticsService{
		AnalyticsRepo: analyticsRepo,
		QuizRepo:      quizRepo,
		Redis:         rdb,
	}
}

// ChartData 前端图表直接可用的数据结构
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type TypePerformance struct {
	QuestionType string  `json:"questionType"`
	Correct      int     `json:"correct"`
	Total        int     `json:"total"`
	Percentage   float64 `json:"percentage"`
}

type QuestionTypePerformanceResult struct {
	PerType []TypePerformance `json:"perType"`
	Chart   ChartData         `json:"chart"`
}

// QuestionTypePerformance 按题型统计答对率。
// 从原始作答重算每题正确性，与提交评分共用同一套判分规则，
// 保证报表与落库成绩永远一致。
func (s *AnalyticsService) QuestionTypePerformance(filter repository.ResponseFilter) (*QuestionTypePerformanceResult, error) {
	cacheKey := fmt.Sprintf("analytics:qtype:%d:%d:%d", filter.ClassroomID, filter.QuizID, filter.TeacherID)
	if cached := s.fromCache(cacheKey); cached != nil {
		var result QuestionTypePerformanceResult
		if err := json.Unmarshal(cached, &result); err == nil {
			return &result, nil
		}
	}

	responses, err := s.AnalyticsRepo.ListResponses(filter)
	if err != nil {
		return nil, err
	}

	quizIDSet := make(map[uint]struct{})
	for _, r := range responses {
		quizIDSet[r.QuizID] = struct{}{}
	}
	quizIDs := make([]uint, 0, len(quizIDSet))
	for id := range quizIDSet {
		quizIDs = append(quizIDs, id)
	}

	questions, err := s.AnalyticsRepo.ListQuestionsForQuizzes(quizIDs)
	if err != nil {
		return nil, err
	}

	// 每个测验的题目索引，key 为字符串形式的题目 ID
	questionsByQuiz := make(map[uint]map[string]grading.Question)
	for i := range questions {
		q := &questions[i]
		if questionsByQuiz[q.QuizID] == nil {
			questionsByQuiz[q.QuizID] = make(map[string]grading.Question)
		}
		questionsByQuiz[q.QuizID][util.FormatUint(q.ID)] = toGradingQuestion(q)
	}

	correct := make(map[string]int)
	total := make(map[string]int)

	for _, resp := range responses {
		var answers map[string]interface{}
		if err := json.Unmarshal(resp.Responses, &answers); err != nil {
			logger.Log.Warn("skipping unreadable response payload",
				zap.Uint("responseId", resp.ID), zap.Error(err))
			continue
		}

		index := questionsByQuiz[resp.QuizID]
		for questionID, gq := range index {
			raw, answered := answers[questionID]
			if !answered {
				continue
			}
			total[string(gq.Type)]++
			if grading.IsCorrect(gq, raw) {
				correct[string(gq.Type)]++
			}
		}
	}

	types := make([]string, 0, len(total))
	for t := range total {
		types = append(types, t)
	}
	sort.Strings(types)

	result := &QuestionTypePerformanceResult{
		PerType: make([]TypePerformance, 0, len(types)),
		Chart: ChartData{
			Labels:   types,
			Datasets: []ChartDataset{{Label: "Correct (%)"}},
		},
	}
	for _, t := range types {
		pct := 0.0
		if total[t] > 0 {
			pct = float64(correct[t]) / float64(total[t]) * 100
		}
		result.PerType = append(result.PerType, TypePerformance{
			QuestionType: t,
			Correct:      correct[t],
			Total:        total[t],
			Percentage:   pct,
		})
		result.Chart.Datasets[0].Data = append(result.Chart.Datasets[0].Data, pct)
	}

	s.toCache(cacheKey, result)
	return result, nil
}

type ClassroomBreakdown struct {
	Classroom string `json:"classroom"`
	Passed    int    `json:"passed"`
	Failed    int    `json:"failed"`
}

type QuizPassFail struct {
	QuizID             uint                 `json:"quizId"`
	QuizTitle          string               `json:"quizTitle"`
	Passed             int                  `json:"passed"`
	Failed             int                  `json:"failed"`
	ClassroomBreakdown []ClassroomBreakdown `json:"classroomBreakdown"`
}

// PassFailBreakdown 每个测验的及格/不及格人数，并按班级细分
func (s *AnalyticsService) PassFailBreakdown(teacherID uint, isAdmin bool) ([]QuizPassFail, error) {
	var quizzes []model.Quiz
	var err error
	if isAdmin {
		quizzes, err = s.QuizRepo.ListAll()
	} else {
		quizzes, err = s.QuizRepo.ListByCreator(teacherID)
	}
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return []QuizPassFail{}, nil
	}

	quizIDs := make([]uint, 0, len(quizzes))
	titles := make(map[uint]string, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
		titles[q.ID] = q.Title
	}

	rows, err := s.AnalyticsRepo.PassFailByClassroom(quizIDs)
	if err != nil {
		return nil, err
	}

	byQuiz := make(map[uint]*QuizPassFail)
	order := make([]uint, 0)
	for _, row := range rows {
		entry, ok := byQuiz[row.QuizID]
		if !ok {
			entry = &QuizPassFail{QuizID: row.QuizID, QuizTitle: titles[row.QuizID]}
			byQuiz[row.QuizID] = entry
			order = append(order, row.QuizID)
		}
		classroom := model.Classroom{GradeLevel: row.GradeLevel, ClassSection: row.ClassSection}
		entry.Passed += row.Passed
		entry.Failed += row.Failed
		entry.ClassroomBreakdown = append(entry.ClassroomBreakdown, ClassroomBreakdown{
			Classroom: classroom.DisplayName(),
			Passed:    row.Passed,
			Failed:    row.Failed,
		})
	}

	result := make([]QuizPassFail, 0, len(order))
	for _, id := range order {
		result = append(result, *byQuiz[id])
	}
	return result, nil
}

type TypeDistributionResult struct {
	PerType []repository.QuestionTypeCount `json:"perType"`
	Chart   ChartData                      `json:"chart"`
}

// TypeDistribution 题库中各题型的数量分布
func (s *AnalyticsService) TypeDistribution() (*TypeDistributionResult, error) {
	counts, err := s.AnalyticsRepo.CountQuestionsByType()
	if err != nil {
		return nil, err
	}

	result := &TypeDistributionResult{
		PerType: counts,
		Chart: ChartData{
			Datasets: []ChartDataset{{Label: "Questions"}},
		},
	}
	for _, c := range counts {
		result.Chart.Labels = append(result.Chart.Labels, c.QuestionType)
		result.Chart.Datasets[0].Data = append(result.Chart.Datasets[0].Data, float64(c.Count))
	}
	return result, nil
}

// fromCache Redis 未配置时直接跳过缓存
func (s *AnalyticsService) fromCache(key string) []byte {
	if s.Redis == nil {
		return nil
	}
	data, err := s.Redis.Get(context.Background(), key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (s *AnalyticsService) toCache(key string, value interface{}) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), key, data, analyticsCacheTTL).Err(); err != nil {
		logger.Log.Warn("analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
}
