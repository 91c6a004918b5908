package grading

// Aggregate 把答对数与总题数汇总为百分比和及格状态。
// threshold 为及格线（百分比），<=0 时取 DefaultPassThreshold；
// total 为 0 时百分比为 0，永不除零。
func Aggregate(correct, total int, threshold float64) (percentage float64, status Status) {
	if threshold <= 0 {
		threshold = DefaultPassThreshold
	}

	if total > 0 {
		percentage = float64(correct) / float64(total) * 100
	}

	if percentage >= threshold {
		return percentage, StatusPassed
	}
	return percentage, StatusFailed
}
