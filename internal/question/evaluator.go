package question

import "strings"

// Verdict is the outcome of judging one raw answer.
type Verdict struct {
	Correct bool
	// Letter is the correct option letter for multiple choice, empty otherwise.
	Letter string
	// Answer is the canonical answer text.
	Answer string
}

// LetterFor maps a 0-based option index to its answer letter.
func LetterFor(index int) string {
	return string(rune('a' + index))
}

// CorrectLetter returns the letter of the option matching the canonical answer.
func CorrectLetter(q Question) (string, error) {
	idx, ok := optionIndex(q.Options, q.Answer)
	if !ok {
		return "", InvalidData(q, "answer '"+q.Answer+"' is not in the options ["+strings.Join(q.Options, ", ")+"]")
	}
	return LetterFor(idx), nil
}

// Evaluate judges raw against q without touching counters.
func Evaluate(q Question, raw string) (Verdict, error) {
	given := Normalize(raw)
	switch q.Type {
	case TypeMultipleChoice:
		letter, err := CorrectLetter(q)
		if err != nil {
			return Verdict{}, err
		}
		return Verdict{Correct: given == letter, Letter: letter, Answer: q.Answer}, nil
	case TypeFreeForm:
		answer := Normalize(q.Answer)
		return Verdict{Correct: given == answer, Answer: answer}, nil
	default:
		return Verdict{}, InvalidData(q, "unknown question type "+string(q.Type))
	}
}

// IsCorrect reports whether raw is the right answer to q.
func IsCorrect(q Question, raw string) (bool, error) {
	v, err := Evaluate(q, raw)
	if err != nil {
		return false, err
	}
	return v.Correct, nil
}

func optionIndex(options []string, answer string) (int, bool) {
	want := strings.TrimSpace(answer)
	for i, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), want) {
			return i, true
		}
	}
	return -1, false
}
