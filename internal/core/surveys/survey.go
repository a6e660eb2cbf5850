package surveys

import "time"

// Question types.
const (
	QuestionSingle = "single"
	QuestionMulti  = "multi"
	QuestionText   = "text"
)

// Survey is a questionnaire published to the membership.
type Survey struct {
	SurveyID    int64      `json:"surveyId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	OpenFrom    *time.Time `json:"openFrom,omitempty"`
	OpenTo      *time.Time `json:"openTo,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"createdAt"`
	Questions   []Question `json:"questions,omitempty"`
}

// Derived survey lifecycle states.
const (
	StatusInactive = "inactive"
	StatusUpcoming = "upcoming"
	StatusOpen     = "open"
	StatusClosed   = "closed"
)

// SurveySummary is one row on the committee's survey overview.
type SurveySummary struct {
	SurveyID      int64      `json:"surveyId"`
	Title         string     `json:"title"`
	Active        bool       `json:"active"`
	OpenFrom      *time.Time `json:"openFrom,omitempty"`
	OpenTo        *time.Time `json:"openTo,omitempty"`
	QuestionCount int        `json:"questionCount"`
	ResponseCount int        `json:"responseCount"`
	Status        string     `json:"status"`
}

// Question is one item on a survey.
type Question struct {
	SurveyQID    int64    `json:"surveyQid"`
	SurveyID     int64    `json:"surveyId"`
	QuestionText string   `json:"questionText"`
	QuestionType string   `json:"questionType"`
	Required     bool     `json:"required"`
	SortOrder    int      `json:"sortOrder"`
	Choices      []Choice `json:"choices,omitempty"`
}

// Choice is a selectable option on a single or multi question.
type Choice struct {
	ChoiceID int64  `json:"choiceId"`
	Label    string `json:"label"`
}

// Answer is one stored response line. A multi-select question stores
// one line per chosen option.
type Answer struct {
	MemberNo  string    `json:"memberNo"`
	SurveyID  int64     `json:"surveyId"`
	SurveyQID int64     `json:"surveyQid"`
	ChoiceID  *int64    `json:"choiceId,omitempty"`
	FreeText  string    `json:"freeText,omitempty"`
	AnswerAt  time.Time `json:"answerAt"`
}

// AnswerInput is one submitted answer before validation.
type AnswerInput struct {
	SurveyQID int64   `json:"surveyQid"`
	ChoiceIDs []int64 `json:"choiceIds,omitempty"`
	FreeText  string  `json:"freeText,omitempty"`
}

// SubmitRequest is a member's complete response to one survey.
type SubmitRequest struct {
	SurveyID int64         `json:"surveyId"`
	MemberNo string        `json:"memberNo"`
	Answers  []AnswerInput `json:"answers"`
}

// ResultRow is one aggregated line of survey results.
type ResultRow struct {
	SurveyQID    int64  `json:"surveyQid"`
	QuestionText string `json:"questionText"`
	ChoiceID     *int64 `json:"choiceId,omitempty"`
	Label        string `json:"label,omitempty"`
	Responses    int    `json:"responses"`
}
