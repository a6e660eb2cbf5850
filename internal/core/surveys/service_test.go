package surveys

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListOpen(ctx context.Context) ([]Survey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Survey), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, surveyID int64) (*Survey, error) {
	args := m.Called(ctx, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Survey), args.Error(1)
}

func (m *MockRepository) HasResponded(ctx context.Context, surveyID int64, memberNo string) (bool, error) {
	args := m.Called(ctx, surveyID, memberNo)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) SaveAnswers(ctx context.Context, surveyID int64, memberNo string, answers []Answer) error {
	args := m.Called(ctx, surveyID, memberNo, answers)
	return args.Error(0)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]SurveySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SurveySummary), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, survey *Survey) (*Survey, error) {
	args := m.Called(ctx, survey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Survey), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, survey *Survey) error {
	args := m.Called(ctx, survey)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, surveyID int64) error {
	args := m.Called(ctx, surveyID)
	return args.Error(0)
}

func (m *MockRepository) Results(ctx context.Context, surveyID int64) ([]ResultRow, error) {
	args := m.Called(ctx, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ResultRow), args.Error(1)
}

// openSurvey has one required single-choice question, one optional
// multi-choice question and one optional free-text question.
func openSurvey() *Survey {
	return &Survey{
		SurveyID: 7,
		Title:    "Annual Services Survey",
		Active:   true,
		Questions: []Question{
			{
				SurveyQID:    1,
				SurveyID:     7,
				QuestionText: "How satisfied are you with the loan process?",
				QuestionType: QuestionSingle,
				Required:     true,
				Choices: []Choice{
					{ChoiceID: 10, Label: "Satisfied"},
					{ChoiceID: 11, Label: "Not satisfied"},
				},
			},
			{
				SurveyQID:    2,
				SurveyID:     7,
				QuestionText: "Which services have you used?",
				QuestionType: QuestionMulti,
				Choices: []Choice{
					{ChoiceID: 20, Label: "Loans"},
					{ChoiceID: 21, Label: "Deposits"},
					{ChoiceID: 22, Label: "Credit store"},
				},
			},
			{
				SurveyQID:    3,
				SurveyID:     7,
				QuestionText: "Any other comments?",
				QuestionType: QuestionText,
			},
		},
	}
}

func TestSubmit_FlattensMultiSelectIntoOneLinePerChoice(t *testing.T) {
	repo := new(MockRepository)
	service := NewSurveyService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(7)).Return(openSurvey(), nil)

	var saved []Answer
	repo.On("SaveAnswers", ctx, int64(7), "1001", mock.AnythingOfType("[]surveys.Answer")).
		Run(func(args mock.Arguments) {
			saved = args.Get(3).([]Answer)
		}).
		Return(nil)

	err := service.Submit(ctx, SubmitRequest{
		SurveyID: 7,
		MemberNo: "1001",
		Answers: []AnswerInput{
			{SurveyQID: 1, ChoiceIDs: []int64{10}},
			{SurveyQID: 2, ChoiceIDs: []int64{20, 22, 20}},
			{SurveyQID: 3, FreeText: "  Keep it up  "},
		},
	})
	require.NoError(t, err)

	// One line for Q1, two for Q2 (duplicate choice dropped), one for Q3.
	require.Len(t, saved, 4)
	assert.Equal(t, int64(10), *saved[0].ChoiceID)
	assert.Equal(t, int64(20), *saved[1].ChoiceID)
	assert.Equal(t, int64(22), *saved[2].ChoiceID)
	assert.Nil(t, saved[3].ChoiceID)
	assert.Equal(t, "Keep it up", saved[3].FreeText)
	repo.AssertExpectations(t)
}

func TestSubmit_RejectsClosedSurvey(t *testing.T) {
	repo := new(MockRepository)
	service := NewSurveyService(repo)
	ctx := context.Background()

	closed := openSurvey()
	past := time.Now().AddDate(0, 0, -1)
	closed.OpenTo = &past
	repo.On("GetByID", ctx, int64(7)).Return(closed, nil)

	err := service.Submit(ctx, SubmitRequest{
		SurveyID: 7,
		MemberNo: "1001",
		Answers:  []AnswerInput{{SurveyQID: 1, ChoiceIDs: []int64{10}}},
	})
	assert.ErrorIs(t, err, ErrSurveyClosed)
	repo.AssertNotCalled(t, "SaveAnswers", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_RejectsInactiveSurvey(t *testing.T) {
	repo := new(MockRepository)
	service := NewSurveyService(repo)
	ctx := context.Background()

	inactive := openSurvey()
	inactive.Active = false
	repo.On("GetByID", ctx, int64(7)).Return(inactive, nil)

	err := service.Submit(ctx, SubmitRequest{
		SurveyID: 7,
		MemberNo: "1001",
		Answers:  []AnswerInput{{SurveyQID: 1, ChoiceIDs: []int64{10}}},
	})
	assert.ErrorIs(t, err, ErrSurveyClosed)
}

func TestSubmit_RejectsUnknownQuestion(t *testing.T) {
	repo := new(MockRepository)
	service := NewSurveyService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(7)).Return(openSurvey(), nil)

	err := service.Submit(ctx, SubmitRequest{
		SurveyID: 7,
		MemberNo: "1001",
		Answers: []AnswerInput{
			{SurveyQID: 1, ChoiceIDs: []int64{10}},
			{SurveyQID: 99, ChoiceIDs: []int64{10}},
		},
	})
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestSubmit_RejectsUnknownChoice(t *testing.T) {
	repo := new(MockRepository)
	service := NewSurveyService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(7)).Return(openSurvey(), nil)

	err := service.Submit(ctx, SubmitRequest{
		SurveyID: 7,
		MemberNo: "1001",
		Answers:  []AnswerInput{{SurveyQID: 1, ChoiceIDs: []int64{99}}},
	})
	assert.ErrorIs(t, err, ErrUnknownChoice)
}

func TestSubmit_RejectsMissingRequiredQuestion(t *testing.T) {
	repo := new(MockRepository)
	service := NewSurveyService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(7)).Return(openSurvey(), nil)

	err := service.Submit(ctx, SubmitRequest{
		SurveyID: 7,
		MemberNo: "1001",
		Answers:  []AnswerInput{{SurveyQID: 2, ChoiceIDs: []int64{20}}},
	})
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestSubmit_SingleChoiceTakesExactlyOne(t *testing.T) {
	repo := new(MockRepository)
	service := NewSurveyService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(7)).Return(openSurvey(), nil)

	err := service.Submit(ctx, SubmitRequest{
		SurveyID: 7,
		MemberNo: "1001",
		Answers:  []AnswerInput{{SurveyQID: 1, ChoiceIDs: []int64{10, 11}}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmit_RejectsQuestionAnsweredTwice(t *testing.T) {
	repo := new(MockRepository)
	service := NewSurveyService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(7)).Return(openSurvey(), nil)

	err := service.Submit(ctx, SubmitRequest{
		SurveyID: 7,
		MemberNo: "1001",
		Answers: []AnswerInput{
			{SurveyQID: 1, ChoiceIDs: []int64{10}},
			{SurveyQID: 1, ChoiceIDs: []int64{11}},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmit_OptionalTextLeftBlankIsDropped(t *testing.T) {
	repo := new(MockRepository)
	service := NewSurveyService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(7)).Return(openSurvey(), nil)

	var saved []Answer
	repo.On("SaveAnswers", ctx, int64(7), "1001", mock.AnythingOfType("[]surveys.Answer")).
		Run(func(args mock.Arguments) {
			saved = args.Get(3).([]Answer)
		}).
		Return(nil)

	err := service.Submit(ctx, SubmitRequest{
		SurveyID: 7,
		MemberNo: "1001",
		Answers: []AnswerInput{
			{SurveyQID: 1, ChoiceIDs: []int64{10}},
			{SurveyQID: 3, FreeText: "   "},
		},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, int64(1), saved[0].SurveyQID)
}

func TestSubmit_PropagatesAlreadyResponded(t *testing.T) {
	repo := new(MockRepository)
	service := NewSurveyService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(7)).Return(openSurvey(), nil)
	repo.On("SaveAnswers", ctx, int64(7), "1001", mock.AnythingOfType("[]surveys.Answer")).
		Return(ErrAlreadyResponded)

	err := service.Submit(ctx, SubmitRequest{
		SurveyID: 7,
		MemberNo: "1001",
		Answers:  []AnswerInput{{SurveyQID: 1, ChoiceIDs: []int64{10}}},
	})
	assert.ErrorIs(t, err, ErrAlreadyResponded)
}

func TestCreateSurvey_RejectsChoiceQuestionWithOneChoice(t *testing.T) {
	service := NewSurveyService(new(MockRepository))

	_, err := service.CreateSurvey(context.Background(), &Survey{
		Title: "Broken",
		Questions: []Question{
			{
				QuestionText: "Pick one",
				QuestionType: QuestionSingle,
				Choices:      []Choice{{ChoiceID: 1, Label: "Only option"}},
			},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateSurvey_RejectsMissingTitle(t *testing.T) {
	service := NewSurveyService(new(MockRepository))

	_, err := service.CreateSurvey(context.Background(), &Survey{Title: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListAll_DerivesLifecycleState(t *testing.T) {
	repo := new(MockRepository)
	service := NewSurveyService(repo)
	ctx := context.Background()

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)
	repo.On("ListAll", ctx).Return([]SurveySummary{
		{SurveyID: 1, Active: false},
		{SurveyID: 2, Active: true, OpenFrom: &future},
		{SurveyID: 3, Active: true, OpenTo: &past},
		{SurveyID: 4, Active: true, OpenFrom: &past, OpenTo: &future, QuestionCount: 3},
	}, nil)

	summaries, err := service.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 4)
	assert.Equal(t, StatusInactive, summaries[0].Status)
	assert.Equal(t, StatusUpcoming, summaries[1].Status)
	assert.Equal(t, StatusClosed, summaries[2].Status)
	assert.Equal(t, StatusOpen, summaries[3].Status)
}
