package entity

// NoAnswer marks a question that was left unanswered or answered with
// something other than an option number.
const NoAnswer = -1

type AttemptAnswer struct {
	Question   Question `json:"question"`
	UserAnswer int      `json:"user_answer"`
	IsCorrect  bool     `json:"is_correct"`
}

// AttemptResult is the scoring of one quiz submission. It is never stored.
type AttemptResult struct {
	Answers []AttemptAnswer `json:"answers"`
	Correct int             `json:"correct"`
	Total   int             `json:"total"`
}

// ScoreAttempt compares answers, keyed by question id, with the stored
// correct options. Questions missing from answers count as NoAnswer.
func ScoreAttempt(questions []Question, answers map[int64]int) AttemptResult {
	result := AttemptResult{
		Answers: make([]AttemptAnswer, 0, len(questions)),
		Total:   len(questions),
	}

	for _, question := range questions {
		userAnswer, ok := answers[question.ID]
		if !ok || !ValidAnswer(userAnswer) {
			userAnswer = NoAnswer
		}

		isCorrect := userAnswer == question.CorrectAnswer
		if isCorrect {
			result.Correct++
		}
		result.Answers = append(result.Answers, AttemptAnswer{
			Question:   question,
			UserAnswer: userAnswer,
			IsCorrect:  isCorrect,
		})
	}
	return result
}

func (r AttemptResult) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return r.Correct * 100 / r.Total
}
