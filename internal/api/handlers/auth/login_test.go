package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/accounts"
)

// mockAccountService implements accounts.Service for testing
type mockAccountService struct {
	loginFunc      func(ctx context.Context, req accounts.LoginRequest) (*accounts.LoginResult, error)
	getAccountFunc func(ctx context.Context, memberNo string) (*accounts.WebUser, error)
}

func (m *mockAccountService) Register(ctx context.Context, req accounts.RegisterRequest) (*accounts.WebUser, error) {
	return nil, nil
}

func (m *mockAccountService) Activate(ctx context.Context, registerToken string) (*accounts.WebUser, error) {
	return nil, nil
}

func (m *mockAccountService) Login(ctx context.Context, req accounts.LoginRequest) (*accounts.LoginResult, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return &accounts.LoginResult{
		Token:      "signed.jwt.token",
		MemberNo:   "1001",
		MemberName: "Dela Cruz, Juan",
		Email:      "juan@example.com",
	}, nil
}

func (m *mockAccountService) ResendActivation(ctx context.Context, memberNo string) error {
	return nil
}

func (m *mockAccountService) CheckMember(ctx context.Context, memberNo string) (*accounts.MemberCheck, error) {
	return &accounts.MemberCheck{MemberNo: memberNo, MemberExists: true}, nil
}

func (m *mockAccountService) ForgotPassword(ctx context.Context, memberNo string) error {
	return nil
}

func (m *mockAccountService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	return nil
}

func (m *mockAccountService) ChangePassword(ctx context.Context, memberNo, oldPassword, newPassword string) error {
	return nil
}

func (m *mockAccountService) GetAccount(ctx context.Context, memberNo string) (*accounts.WebUser, error) {
	if m.getAccountFunc != nil {
		return m.getAccountFunc(ctx, memberNo)
	}
	return &accounts.WebUser{MemberNo: memberNo, Email: "juan@example.com", Status: accounts.StatusActive}, nil
}

func TestLoginHandler_Success(t *testing.T) {
	handler := NewLoginHandler(&mockAccountService{})

	body, err := json.Marshal(accounts.LoginRequest{MemberNo: "1001", Password: "correct1horse"})
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.HandleLogin(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var result accounts.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Token == "" {
		t.Errorf("Expected an access token in the response")
	}
	if result.MemberNo != "1001" {
		t.Errorf("Expected member 1001, got %s", result.MemberNo)
	}
}

func TestLoginHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		serviceError   error
		name           string
		expectedError  string
		expectedStatus int
	}{
		{
			name:           "bad credentials",
			serviceError:   accounts.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "InvalidCredentials",
		},
		{
			name:           "account not activated",
			serviceError:   accounts.ErrAccountNotActive,
			expectedStatus: http.StatusForbidden,
			expectedError:  "AccountNotActive",
		},
		{
			name:           "missing fields",
			serviceError:   accounts.ErrInvalidInput,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "InvalidRequest",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewLoginHandler(&mockAccountService{
				loginFunc: func(ctx context.Context, req accounts.LoginRequest) (*accounts.LoginResult, error) {
					return nil, tc.serviceError
				},
			})

			body := []byte(`{"memberNo":"1001","password":"whatever1"}`)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			handler.HandleLogin(w, req)

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

func TestLoginHandler_InvalidJSON(t *testing.T) {
	handler := NewLoginHandler(&mockAccountService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{invalid json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.HandleLogin(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestVerifyHandler_Success(t *testing.T) {
	handler := NewLoginHandler(&mockAccountService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil)
	ctx := context.WithValue(req.Context(), middleware.MemberNoKey, "1001")
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	handler.HandleVerify(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var response struct {
		MemberNo string `json:"memberNo"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.MemberNo != "1001" {
		t.Errorf("Expected member 1001, got %s", response.MemberNo)
	}
	if response.Status != accounts.StatusActive {
		t.Errorf("Expected status %s, got %s", accounts.StatusActive, response.Status)
	}
}

func TestVerifyHandler_RequiresAuth(t *testing.T) {
	handler := NewLoginHandler(&mockAccountService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil)
	w := httptest.NewRecorder()
	handler.HandleVerify(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d. Body: %s", w.Code, w.Body.String())
	}
}
