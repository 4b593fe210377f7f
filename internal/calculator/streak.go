package calculator

// TrailingStreak counts consecutive true values backward from the end of the
// series, stopping at the first false. An empty series yields 0, and a single
// trailing false yields 0 regardless of prior history.
func TrailingStreak(series []bool) int {
	count := 0
	for i := len(series) - 1; i >= 0; i-- {
		if !series[i] {
			break
		}
		count++
	}
	return count
}
