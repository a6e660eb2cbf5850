package surveys

import "context"

// Service handles survey publication and member responses.
type Service interface {
	ListOpen(ctx context.Context) ([]Survey, error)
	GetSurvey(ctx context.Context, surveyID int64) (*Survey, error)
	HasResponded(ctx context.Context, surveyID int64, memberNo string) (bool, error)

	// Submit stores a member's full response in one transaction.
	Submit(ctx context.Context, req SubmitRequest) error

	// Committee operations.
	ListAll(ctx context.Context) ([]SurveySummary, error)
	CreateSurvey(ctx context.Context, survey *Survey) (*Survey, error)
	UpdateSurvey(ctx context.Context, survey *Survey) error
	DeleteSurvey(ctx context.Context, surveyID int64) error
	Results(ctx context.Context, surveyID int64) ([]ResultRow, error)
}

// Repository handles survey persistence. SaveAnswers owns the response
// transaction: all lines land or none do, and a duplicate response
// fails as ErrAlreadyResponded.
type Repository interface {
	ListOpen(ctx context.Context) ([]Survey, error)
	GetByID(ctx context.Context, surveyID int64) (*Survey, error)
	HasResponded(ctx context.Context, surveyID int64, memberNo string) (bool, error)
	SaveAnswers(ctx context.Context, surveyID int64, memberNo string, answers []Answer) error

	ListAll(ctx context.Context) ([]SurveySummary, error)
	Create(ctx context.Context, survey *Survey) (*Survey, error)
	Update(ctx context.Context, survey *Survey) error
	Delete(ctx context.Context, surveyID int64) error
	Results(ctx context.Context, surveyID int64) ([]ResultRow, error)
}
