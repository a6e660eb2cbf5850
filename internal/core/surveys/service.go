package surveys

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type surveyService struct {
	repo Repository
	now  func() time.Time
}

func NewSurveyService(repo Repository) Service {
	return &surveyService{repo: repo, now: time.Now}
}

func (s *surveyService) ListOpen(ctx context.Context) ([]Survey, error) {
	return s.repo.ListOpen(ctx)
}

func (s *surveyService) GetSurvey(ctx context.Context, surveyID int64) (*Survey, error) {
	if surveyID <= 0 {
		return nil, fmt.Errorf("%w: survey id is required", ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, surveyID)
}

func (s *surveyService) HasResponded(ctx context.Context, surveyID int64, memberNo string) (bool, error) {
	memberNo = strings.TrimSpace(memberNo)
	if surveyID <= 0 || memberNo == "" {
		return false, fmt.Errorf("%w: survey id and member number are required", ErrInvalidInput)
	}
	return s.repo.HasResponded(ctx, surveyID, memberNo)
}

// Submit validates a full response against the survey definition, then
// hands the expanded answer lines to the repository as one transaction.
func (s *surveyService) Submit(ctx context.Context, req SubmitRequest) error {
	req.MemberNo = strings.TrimSpace(req.MemberNo)
	if req.SurveyID <= 0 || req.MemberNo == "" {
		return fmt.Errorf("%w: survey id and member number are required", ErrInvalidInput)
	}
	if len(req.Answers) == 0 {
		return fmt.Errorf("%w: response contains no answers", ErrInvalidInput)
	}

	survey, err := s.repo.GetByID(ctx, req.SurveyID)
	if err != nil {
		return err
	}
	if !s.isOpen(survey) {
		return ErrSurveyClosed
	}

	answers, err := expandAnswers(survey, req, s.now().UTC())
	if err != nil {
		return err
	}
	return s.repo.SaveAnswers(ctx, req.SurveyID, req.MemberNo, answers)
}

// ListAll returns every survey with counts and a lifecycle state
// derived from the open window. Committee overview screen.
func (s *surveyService) ListAll(ctx context.Context) ([]SurveySummary, error) {
	summaries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range summaries {
		summaries[i].Status = deriveStatus(&summaries[i], now)
	}
	return summaries, nil
}

func deriveStatus(s *SurveySummary, now time.Time) string {
	switch {
	case !s.Active:
		return StatusInactive
	case s.OpenFrom != nil && now.Before(*s.OpenFrom):
		return StatusUpcoming
	case s.OpenTo != nil && now.After(*s.OpenTo):
		return StatusClosed
	default:
		return StatusOpen
	}
}

func (s *surveyService) CreateSurvey(ctx context.Context, survey *Survey) (*Survey, error) {
	if err := validateDefinition(survey); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, survey)
}

func (s *surveyService) UpdateSurvey(ctx context.Context, survey *Survey) error {
	if survey == nil || survey.SurveyID <= 0 {
		return fmt.Errorf("%w: survey id is required", ErrInvalidInput)
	}
	if err := validateDefinition(survey); err != nil {
		return err
	}
	return s.repo.Update(ctx, survey)
}

func (s *surveyService) DeleteSurvey(ctx context.Context, surveyID int64) error {
	if surveyID <= 0 {
		return fmt.Errorf("%w: survey id is required", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, surveyID)
}

func (s *surveyService) Results(ctx context.Context, surveyID int64) ([]ResultRow, error) {
	if surveyID <= 0 {
		return nil, fmt.Errorf("%w: survey id is required", ErrInvalidInput)
	}
	return s.repo.Results(ctx, surveyID)
}

func (s *surveyService) isOpen(survey *Survey) bool {
	if !survey.Active {
		return false
	}
	now := s.now()
	if survey.OpenFrom != nil && now.Before(*survey.OpenFrom) {
		return false
	}
	if survey.OpenTo != nil && now.After(*survey.OpenTo) {
		return false
	}
	return true
}

// expandAnswers checks every submitted answer against the survey
// definition and flattens multi-select answers into one line per
// chosen option.
func expandAnswers(survey *Survey, req SubmitRequest, at time.Time) ([]Answer, error) {
	questions := make(map[int64]*Question, len(survey.Questions))
	for i := range survey.Questions {
		questions[survey.Questions[i].SurveyQID] = &survey.Questions[i]
	}

	answered := make(map[int64]bool, len(req.Answers))
	var answers []Answer
	for _, in := range req.Answers {
		q, ok := questions[in.SurveyQID]
		if !ok {
			return nil, fmt.Errorf("%w: question %d", ErrUnknownQuestion, in.SurveyQID)
		}
		if answered[in.SurveyQID] {
			return nil, fmt.Errorf("%w: question %d answered twice", ErrInvalidInput, in.SurveyQID)
		}
		answered[in.SurveyQID] = true

		lines, err := expandOne(q, in, req, at)
		if err != nil {
			return nil, err
		}
		answers = append(answers, lines...)
	}

	for _, q := range survey.Questions {
		if q.Required && !answered[q.SurveyQID] {
			return nil, fmt.Errorf("%w: question %d", ErrMissingRequired, q.SurveyQID)
		}
	}

	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: response contains no answers", ErrInvalidInput)
	}
	return answers, nil
}

func expandOne(q *Question, in AnswerInput, req SubmitRequest, at time.Time) ([]Answer, error) {
	base := Answer{
		MemberNo:  req.MemberNo,
		SurveyID:  req.SurveyID,
		SurveyQID: q.SurveyQID,
		AnswerAt:  at,
	}

	switch q.QuestionType {
	case QuestionText:
		text := strings.TrimSpace(in.FreeText)
		if text == "" {
			if q.Required {
				return nil, fmt.Errorf("%w: question %d", ErrMissingRequired, q.SurveyQID)
			}
			return nil, nil
		}
		base.FreeText = text
		return []Answer{base}, nil

	case QuestionSingle:
		if len(in.ChoiceIDs) != 1 {
			return nil, fmt.Errorf("%w: question %d takes exactly one choice", ErrInvalidInput, q.SurveyQID)
		}
		fallthrough

	case QuestionMulti:
		if len(in.ChoiceIDs) == 0 {
			return nil, fmt.Errorf("%w: question %d takes at least one choice", ErrInvalidInput, q.SurveyQID)
		}
		valid := make(map[int64]bool, len(q.Choices))
		for _, c := range q.Choices {
			valid[c.ChoiceID] = true
		}
		seen := make(map[int64]bool, len(in.ChoiceIDs))
		var lines []Answer
		for _, cid := range in.ChoiceIDs {
			if !valid[cid] {
				return nil, fmt.Errorf("%w: choice %d on question %d", ErrUnknownChoice, cid, q.SurveyQID)
			}
			if seen[cid] {
				continue
			}
			seen[cid] = true
			line := base
			choiceID := cid
			line.ChoiceID = &choiceID
			lines = append(lines, line)
		}
		return lines, nil

	default:
		return nil, fmt.Errorf("%w: question %d has unknown type %q", ErrInvalidInput, q.SurveyQID, q.QuestionType)
	}
}

func validateDefinition(survey *Survey) error {
	if survey == nil || strings.TrimSpace(survey.Title) == "" {
		return fmt.Errorf("%w: survey title is required", ErrInvalidInput)
	}
	for _, q := range survey.Questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			return fmt.Errorf("%w: question text is required", ErrInvalidInput)
		}
		switch q.QuestionType {
		case QuestionText:
			// no choices needed
		case QuestionSingle, QuestionMulti:
			if len(q.Choices) < 2 {
				return fmt.Errorf("%w: question %q needs at least two choices", ErrInvalidInput, q.QuestionText)
			}
		default:
			return fmt.Errorf("%w: unknown question type %q", ErrInvalidInput, q.QuestionType)
		}
	}
	return nil
}
