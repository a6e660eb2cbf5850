package election

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/elections"
	"CoopLink/internal/core/sysconfig"
)

// mockElectionService implements elections.Service for testing
type mockElectionService struct {
	submitFunc    func(ctx context.Context, req elections.SubmitVoteRequest) (*elections.BallotReceipt, error)
	hasVotedFunc  func(ctx context.Context, memberNo string, year int) (bool, error)
	getBallotFunc func(ctx context.Context, memberNo string, year int) (*elections.Ballot, error)
}

func (m *mockElectionService) SubmitVote(ctx context.Context, req elections.SubmitVoteRequest) (*elections.BallotReceipt, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, req)
	}
	return &elections.BallotReceipt{BallotNo: 2026000001, TotalVotes: 3}, nil
}

func (m *mockElectionService) HasVoted(ctx context.Context, memberNo string, year int) (bool, error) {
	if m.hasVotedFunc != nil {
		return m.hasVotedFunc(ctx, memberNo, year)
	}
	return false, nil
}

func (m *mockElectionService) GetBallot(ctx context.Context, memberNo string, year int) (*elections.Ballot, error) {
	if m.getBallotFunc != nil {
		return m.getBallotFunc(ctx, memberNo, year)
	}
	return nil, elections.ErrBallotNotFound
}

func (m *mockElectionService) ListCastVotes(ctx context.Context, memberNo string, year int) ([]elections.CastVote, error) {
	return nil, nil
}

func (m *mockElectionService) CreatePosition(ctx context.Context, p elections.Position) error {
	return nil
}

func (m *mockElectionService) ListPositions(ctx context.Context) ([]elections.Position, error) {
	return nil, nil
}

func (m *mockElectionService) UpdatePosition(ctx context.Context, p elections.Position) error {
	return nil
}

func (m *mockElectionService) DeletePosition(ctx context.Context, positionID string) error {
	return nil
}

func (m *mockElectionService) CreateCandidate(ctx context.Context, c elections.Candidate) error {
	return nil
}

func (m *mockElectionService) ListCandidates(ctx context.Context, year int) ([]elections.CandidateDetail, error) {
	return nil, nil
}

func (m *mockElectionService) UpdateCandidate(ctx context.Context, c elections.Candidate) error {
	return nil
}

func (m *mockElectionService) DeleteCandidate(ctx context.Context, candidateID, memberNo string, year int) error {
	return nil
}

func (m *mockElectionService) GetCandidate(ctx context.Context, candidateID string, year int) (*elections.Candidate, error) {
	return nil, elections.ErrCandidateNotFound
}

func (m *mockElectionService) Status(ctx context.Context, year int) (*elections.StatusCounts, error) {
	return &elections.StatusCounts{}, nil
}

func (m *mockElectionService) Results(ctx context.Context, year int) ([]elections.ResultRow, error) {
	return nil, nil
}

// mockConfigService implements sysconfig.Service with a fixed window
type mockConfigService struct {
	window    *sysconfig.ElectionWindow
	windowErr error
}

func (m *mockConfigService) ElectionWindow(ctx context.Context) (*sysconfig.ElectionWindow, error) {
	if m.windowErr != nil {
		return nil, m.windowErr
	}
	return m.window, nil
}

func (m *mockConfigService) SetElectionWindow(ctx context.Context, w sysconfig.ElectionWindow) error {
	return nil
}

func (m *mockConfigService) ElecomList(ctx context.Context) (*sysconfig.MemberList, error) {
	return sysconfig.NewMemberList(nil), nil
}

func (m *mockConfigService) AddElecomMember(ctx context.Context, memberNo string) error {
	return nil
}

func (m *mockConfigService) RemoveElecomMember(ctx context.Context, memberNo string) error {
	return nil
}

func (m *mockConfigService) IsElecomMember(ctx context.Context, memberNo string) (bool, error) {
	return false, nil
}

func (m *mockConfigService) SurveyAdminList(ctx context.Context) (*sysconfig.MemberList, error) {
	return sysconfig.NewMemberList(nil), nil
}

func (m *mockConfigService) IsSurveyAdmin(ctx context.Context, memberNo string) (bool, error) {
	return false, nil
}

func openWindow() *sysconfig.ElectionWindow {
	now := time.Now()
	return &sysconfig.ElectionWindow{
		Year:  now.Year(),
		From:  now.AddDate(0, 0, -1).Format("2006-01-02"),
		To:    now.AddDate(0, 0, 1).Format("2006-01-02"),
		Start: true,
	}
}

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), middleware.MemberNoKey, "1001")
	return req.WithContext(ctx)
}

func TestSubmitVoteHandler_Success(t *testing.T) {
	var captured elections.SubmitVoteRequest
	mockService := &mockElectionService{
		submitFunc: func(ctx context.Context, req elections.SubmitVoteRequest) (*elections.BallotReceipt, error) {
			captured = req
			return &elections.BallotReceipt{BallotNo: 2026000042, TotalVotes: 2}, nil
		},
	}
	handler := NewBallotHandler(mockService, &mockConfigService{window: openWindow()})

	body, err := json.Marshal(map[string]interface{}{
		"votes": []elections.PositionSelection{
			{PositionID: "BOD", CandidateIDs: []string{"C-01", "C-02"}},
		},
	})
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	w := httptest.NewRecorder()
	handler.HandleSubmitVote(w, authedRequest(http.MethodPost, "/api/v1/election/vote", body))

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	var receipt elections.BallotReceipt
	if err := json.NewDecoder(w.Body).Decode(&receipt); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if receipt.BallotNo != 2026000042 {
		t.Errorf("Expected ballot number 2026000042, got %d", receipt.BallotNo)
	}

	// Member and year come from the token and the config, not the body.
	if captured.MemberNo != "1001" {
		t.Errorf("Expected member 1001, got %s", captured.MemberNo)
	}
	if captured.Year != time.Now().Year() {
		t.Errorf("Expected configured year %d, got %d", time.Now().Year(), captured.Year)
	}
}

func TestSubmitVoteHandler_RequiresAuth(t *testing.T) {
	handler := NewBallotHandler(&mockElectionService{}, &mockConfigService{window: openWindow()})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/election/vote", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	handler.HandleSubmitVote(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestSubmitVoteHandler_WindowClosed(t *testing.T) {
	tests := []struct {
		name   string
		window func() *sysconfig.ElectionWindow
	}{
		{
			"switch off",
			func() *sysconfig.ElectionWindow {
				w := openWindow()
				w.Start = false
				return w
			},
		},
		{
			"before window",
			func() *sysconfig.ElectionWindow {
				now := time.Now()
				return &sysconfig.ElectionWindow{
					Year:  now.Year(),
					From:  now.AddDate(0, 0, 2).Format("2006-01-02"),
					To:    now.AddDate(0, 0, 5).Format("2006-01-02"),
					Start: true,
				}
			},
		},
		{
			"after window",
			func() *sysconfig.ElectionWindow {
				now := time.Now()
				return &sysconfig.ElectionWindow{
					Year:  now.Year(),
					From:  now.AddDate(0, 0, -5).Format("2006-01-02"),
					To:    now.AddDate(0, 0, -2).Format("2006-01-02"),
					Start: true,
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewBallotHandler(&mockElectionService{}, &mockConfigService{window: tc.window()})

			body := []byte(`{"votes":[{"positionId":"BOD","candidateIds":["C-01"]}]}`)
			w := httptest.NewRecorder()
			handler.HandleSubmitVote(w, authedRequest(http.MethodPost, "/api/v1/election/vote", body))

			if w.Code != http.StatusForbidden {
				t.Errorf("Expected status 403, got %d. Body: %s", w.Code, w.Body.String())
			}

			var errResp struct {
				Error string `json:"error"`
			}
			if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if errResp.Error != "ElectionClosed" {
				t.Errorf("Expected error ElectionClosed, got %s", errResp.Error)
			}
		})
	}
}

func TestSubmitVoteHandler_WindowNotConfigured(t *testing.T) {
	handler := NewBallotHandler(&mockElectionService{}, &mockConfigService{windowErr: sysconfig.ErrNotFound})

	body := []byte(`{"votes":[{"positionId":"BOD","candidateIds":["C-01"]}]}`)
	w := httptest.NewRecorder()
	handler.HandleSubmitVote(w, authedRequest(http.MethodPost, "/api/v1/election/vote", body))

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestSubmitVoteHandler_InvalidJSON(t *testing.T) {
	handler := NewBallotHandler(&mockElectionService{}, &mockConfigService{window: openWindow()})

	w := httptest.NewRecorder()
	handler.HandleSubmitVote(w, authedRequest(http.MethodPost, "/api/v1/election/vote", []byte("{invalid json")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestSubmitVoteHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		serviceError   error
		name           string
		expectedError  string
		expectedStatus int
	}{
		{
			name:           "already voted",
			serviceError:   elections.ErrAlreadyVoted,
			expectedStatus: http.StatusConflict,
			expectedError:  "AlreadyVoted",
		},
		{
			name:           "seat limit exceeded",
			serviceError:   elections.ErrTooManySelections,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "TooManySelections",
		},
		{
			name:           "candidate mismatch",
			serviceError:   elections.ErrCandidateMismatch,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "CandidateMismatch",
		},
		{
			name:           "unknown position",
			serviceError:   elections.ErrUnknownPosition,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "UnknownPosition",
		},
		{
			name:           "invalid candidate",
			serviceError:   elections.ErrInvalidCandidate,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "InvalidCandidate",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &mockElectionService{
				submitFunc: func(ctx context.Context, req elections.SubmitVoteRequest) (*elections.BallotReceipt, error) {
					return nil, tc.serviceError
				},
			}
			handler := NewBallotHandler(mockService, &mockConfigService{window: openWindow()})

			body := []byte(`{"votes":[{"positionId":"BOD","candidateIds":["C-01"]}]}`)
			w := httptest.NewRecorder()
			handler.HandleSubmitVote(w, authedRequest(http.MethodPost, "/api/v1/election/vote", body))

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tc.expectedStatus, w.Code, w.Body.String())
			}

			var errResp struct {
				Error string `json:"error"`
			}
			if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if errResp.Error != tc.expectedError {
				t.Errorf("Expected error %s, got %s", tc.expectedError, errResp.Error)
			}
		})
	}
}

func TestHasVotedHandler_DefaultsToConfiguredYear(t *testing.T) {
	var gotYear int
	mockService := &mockElectionService{
		hasVotedFunc: func(ctx context.Context, memberNo string, year int) (bool, error) {
			gotYear = year
			return true, nil
		},
	}
	handler := NewBallotHandler(mockService, &mockConfigService{window: openWindow()})

	w := httptest.NewRecorder()
	handler.HandleHasVoted(w, authedRequest(http.MethodGet, "/api/v1/election/has-voted", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if gotYear != time.Now().Year() {
		t.Errorf("Expected configured year %d, got %d", time.Now().Year(), gotYear)
	}

	var response struct {
		HasVoted bool `json:"hasVoted"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !response.HasVoted {
		t.Errorf("Expected hasVoted true")
	}
}

func TestHasVotedHandler_YearParam(t *testing.T) {
	var gotYear int
	mockService := &mockElectionService{
		hasVotedFunc: func(ctx context.Context, memberNo string, year int) (bool, error) {
			gotYear = year
			return false, nil
		},
	}
	handler := NewBallotHandler(mockService, &mockConfigService{window: openWindow()})

	w := httptest.NewRecorder()
	handler.HandleHasVoted(w, authedRequest(http.MethodGet, "/api/v1/election/has-voted?year=2024", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if gotYear != 2024 {
		t.Errorf("Expected year 2024, got %d", gotYear)
	}
}

func TestHasVotedHandler_BadYearParam(t *testing.T) {
	handler := NewBallotHandler(&mockElectionService{}, &mockConfigService{window: openWindow()})

	w := httptest.NewRecorder()
	handler.HandleHasVoted(w, authedRequest(http.MethodGet, "/api/v1/election/has-voted?year=abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestGetBallotHandler_NotFound(t *testing.T) {
	handler := NewBallotHandler(&mockElectionService{}, &mockConfigService{window: openWindow()})

	w := httptest.NewRecorder()
	handler.HandleGetBallot(w, authedRequest(http.MethodGet, "/api/v1/election/ballot", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestListCastVotesHandler_EmptyBallotIsEmptyList(t *testing.T) {
	handler := NewBallotHandler(&mockElectionService{}, &mockConfigService{window: openWindow()})

	w := httptest.NewRecorder()
	handler.HandleListCastVotes(w, authedRequest(http.MethodGet, "/api/v1/election/votes", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var response struct {
		Votes []elections.CastVote `json:"votes"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Votes == nil {
		t.Errorf("Expected empty votes array, got null")
	}
}
