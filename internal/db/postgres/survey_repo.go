package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"CoopLink/internal/core/surveys"
)

type postgresSurveyRepo struct {
	db *sql.DB
}

// NewSurveyRepository creates a new PostgreSQL survey repository
func NewSurveyRepository(db *sql.DB) surveys.Repository {
	return &postgresSurveyRepo{db: db}
}

func (r *postgresSurveyRepo) ListOpen(ctx context.Context) ([]surveys.Survey, error) {
	query := `
		SELECT survey_id, title, COALESCE(description, ''), open_from, open_to, active, created_at
		FROM surveys
		WHERE active = true
		  AND (open_from IS NULL OR open_from <= now())
		  AND (open_to IS NULL OR open_to >= now())
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	defer rows.Close()

	var result []surveys.Survey
	for rows.Next() {
		survey, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		result = append(result, *survey)
	}
	return result, rows.Err()
}

func (r *postgresSurveyRepo) ListAll(ctx context.Context) ([]surveys.SurveySummary, error) {
	query := `
		SELECT s.survey_id, s.title, s.active, s.open_from, s.open_to,
		       (SELECT COUNT(*) FROM survey_questions q WHERE q.survey_id = s.survey_id),
		       (SELECT COUNT(*) FROM survey_responses r WHERE r.survey_id = s.survey_id)
		FROM surveys s
		ORDER BY s.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all surveys: %w", err)
	}
	defer rows.Close()

	var summaries []surveys.SurveySummary
	for rows.Next() {
		var s surveys.SurveySummary
		var from, to sql.NullTime
		if err := rows.Scan(&s.SurveyID, &s.Title, &s.Active, &from, &to,
			&s.QuestionCount, &s.ResponseCount); err != nil {
			return nil, fmt.Errorf("failed to scan survey summary: %w", err)
		}
		if from.Valid {
			s.OpenFrom = &from.Time
		}
		if to.Valid {
			s.OpenTo = &to.Time
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *postgresSurveyRepo) GetByID(ctx context.Context, surveyID int64) (*surveys.Survey, error) {
	query := `
		SELECT survey_id, title, COALESCE(description, ''), open_from, open_to, active, created_at
		FROM surveys
		WHERE survey_id = $1`

	survey, err := scanSurvey(r.db.QueryRowContext(ctx, query, surveyID))
	if err == sql.ErrNoRows {
		return nil, surveys.ErrSurveyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}

	if err := r.loadQuestions(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (r *postgresSurveyRepo) HasResponded(ctx context.Context, surveyID int64, memberNo string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM survey_responses WHERE survey_id = $1 AND member_no = $2)`,
		surveyID, memberNo).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check survey response: %w", err)
	}
	return exists, nil
}

// SaveAnswers stores a complete response atomically. The response
// header carries the one-response-per-member constraint; answer lines
// hang off it.
func (r *postgresSurveyRepo) SaveAnswers(ctx context.Context, surveyID int64, memberNo string, answers []surveys.Answer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO survey_responses (survey_id, member_no) VALUES ($1, $2)`,
		surveyID, memberNo)
	if err != nil {
		if isUniqueViolation(err) {
			return surveys.ErrAlreadyResponded
		}
		return fmt.Errorf("failed to create survey response: %w", err)
	}

	for _, a := range answers {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO survey_answers (survey_id, member_no, survey_qid, choice_id, free_text, answer_at)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
			a.SurveyID, a.MemberNo, a.SurveyQID, a.ChoiceID, a.FreeText, a.AnswerAt)
		if err != nil {
			return fmt.Errorf("failed to save answer for question %d: %w", a.SurveyQID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit survey response: %w", err)
	}
	return nil
}

func (r *postgresSurveyRepo) Create(ctx context.Context, survey *surveys.Survey) (*surveys.Survey, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO surveys (title, description, open_from, open_to, active)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		RETURNING survey_id, created_at`,
		survey.Title, survey.Description, survey.OpenFrom, survey.OpenTo, survey.Active).
		Scan(&survey.SurveyID, &survey.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}

	if err := insertQuestions(ctx, tx, survey); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit survey: %w", err)
	}
	return survey, nil
}

// Update rewrites the survey definition wholesale. Existing responses
// keep their lines; the committee only edits surveys before opening
// them.
func (r *postgresSurveyRepo) Update(ctx context.Context, survey *surveys.Survey) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE surveys
		SET title = $2, description = NULLIF($3, ''), open_from = $4, open_to = $5, active = $6
		WHERE survey_id = $1`,
		survey.SurveyID, survey.Title, survey.Description, survey.OpenFrom, survey.OpenTo, survey.Active)
	if err != nil {
		return fmt.Errorf("failed to update survey: %w", err)
	}
	if err := requireRows(result, surveys.ErrSurveyNotFound); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM survey_questions WHERE survey_id = $1`, survey.SurveyID); err != nil {
		return fmt.Errorf("failed to clear survey questions: %w", err)
	}
	if err := insertQuestions(ctx, tx, survey); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit survey update: %w", err)
	}
	return nil
}

func (r *postgresSurveyRepo) Delete(ctx context.Context, surveyID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM surveys WHERE survey_id = $1`, surveyID)
	if err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	return requireRows(result, surveys.ErrSurveyNotFound)
}

func (r *postgresSurveyRepo) Results(ctx context.Context, surveyID int64) ([]surveys.ResultRow, error) {
	query := `
		SELECT q.survey_qid, q.question_text, a.choice_id, COALESCE(c.label, ''), COUNT(a.member_no)
		FROM survey_questions q
		LEFT JOIN survey_answers a ON a.survey_qid = q.survey_qid AND a.survey_id = q.survey_id
		LEFT JOIN survey_choices c ON c.choice_id = a.choice_id
		WHERE q.survey_id = $1
		GROUP BY q.survey_qid, q.question_text, q.sort_order, a.choice_id, c.label
		ORDER BY q.sort_order, c.label`

	rows, err := r.db.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey results: %w", err)
	}
	defer rows.Close()

	var results []surveys.ResultRow
	for rows.Next() {
		var row surveys.ResultRow
		var choiceID sql.NullInt64
		if err := rows.Scan(&row.SurveyQID, &row.QuestionText, &choiceID, &row.Label, &row.Responses); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		if choiceID.Valid {
			row.ChoiceID = &choiceID.Int64
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *postgresSurveyRepo) loadQuestions(ctx context.Context, survey *surveys.Survey) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT survey_qid, survey_id, question_text, question_type, required, sort_order
		FROM survey_questions
		WHERE survey_id = $1
		ORDER BY sort_order, survey_qid`, survey.SurveyID)
	if err != nil {
		return fmt.Errorf("failed to load survey questions: %w", err)
	}
	defer rows.Close()

	index := make(map[int64]int)
	for rows.Next() {
		var q surveys.Question
		if err := rows.Scan(&q.SurveyQID, &q.SurveyID, &q.QuestionText, &q.QuestionType, &q.Required, &q.SortOrder); err != nil {
			return fmt.Errorf("failed to scan survey question: %w", err)
		}
		index[q.SurveyQID] = len(survey.Questions)
		survey.Questions = append(survey.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(survey.Questions) == 0 {
		return nil
	}

	choiceRows, err := r.db.QueryContext(ctx, `
		SELECT c.survey_qid, c.choice_id, c.label
		FROM survey_choices c
		JOIN survey_questions q ON q.survey_qid = c.survey_qid
		WHERE q.survey_id = $1
		ORDER BY c.choice_id`, survey.SurveyID)
	if err != nil {
		return fmt.Errorf("failed to load survey choices: %w", err)
	}
	defer choiceRows.Close()

	for choiceRows.Next() {
		var qid int64
		var c surveys.Choice
		if err := choiceRows.Scan(&qid, &c.ChoiceID, &c.Label); err != nil {
			return fmt.Errorf("failed to scan survey choice: %w", err)
		}
		if i, ok := index[qid]; ok {
			survey.Questions[i].Choices = append(survey.Questions[i].Choices, c)
		}
	}
	return choiceRows.Err()
}

func insertQuestions(ctx context.Context, tx *sql.Tx, survey *surveys.Survey) error {
	for i := range survey.Questions {
		q := &survey.Questions[i]
		q.SurveyID = survey.SurveyID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO survey_questions (survey_id, question_text, question_type, required, sort_order)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING survey_qid`,
			q.SurveyID, q.QuestionText, q.QuestionType, q.Required, q.SortOrder).
			Scan(&q.SurveyQID)
		if err != nil {
			return fmt.Errorf("failed to insert survey question: %w", err)
		}

		for j := range q.Choices {
			c := &q.Choices[j]
			err := tx.QueryRowContext(ctx, `
				INSERT INTO survey_choices (survey_qid, label)
				VALUES ($1, $2)
				RETURNING choice_id`,
				q.SurveyQID, c.Label).
				Scan(&c.ChoiceID)
			if err != nil {
				return fmt.Errorf("failed to insert survey choice: %w", err)
			}
		}
	}
	return nil
}

func scanSurvey(row rowScanner) (*surveys.Survey, error) {
	survey := &surveys.Survey{}
	var openFrom, openTo sql.NullTime
	err := row.Scan(&survey.SurveyID, &survey.Title, &survey.Description,
		&openFrom, &openTo, &survey.Active, &survey.CreatedAt)
	if err != nil {
		return nil, err
	}
	if openFrom.Valid {
		survey.OpenFrom = &openFrom.Time
	}
	if openTo.Valid {
		survey.OpenTo = &openTo.Time
	}
	return survey, nil
}
