package session

// Summary tallies the outcome of one session.
type Summary struct {
	Mode    Mode
	Correct int
	Total   int
	// Skipped counts presentations aborted because the stored question was malformed.
	Skipped int
}

// Record adds one judged answer.
func (s *Summary) Record(correct bool) {
	s.Total++
	if correct {
		s.Correct++
	}
}

// Accuracy returns correct/total as a percentage, 0 before any answer.
func (s Summary) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}
