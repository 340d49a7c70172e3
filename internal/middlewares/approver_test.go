package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestApproverMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		authHeader       string
		mockSetup        func(m *MockTokener)
		expectedStatus   int
		expectedApprover string
		expectNextCalled bool
	}{
		{
			name:             "NoHeaderUsesDefault",
			mockSetup:        func(m *MockTokener) {},
			expectedStatus:   http.StatusOK,
			expectedApprover: "Admin",
			expectNextCalled: true,
		},
		{
			name:       "MalformedHeader",
			authHeader: "Token abc",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("invalid authorization header format"))
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:       "InvalidToken",
			authHeader: "Bearer sometoken",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				m.EXPECT().GetApprover(gomock.Any(), "sometoken").
					Return("", errors.New("invalid token"))
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:       "ValidToken",
			authHeader: "Bearer validtoken",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				m.EXPECT().GetApprover(gomock.Any(), "validtoken").
					Return("Finance Lead", nil)
			},
			expectedStatus:   http.StatusOK,
			expectedApprover: "Finance Lead",
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			tt.mockSetup(mockTokener)

			nextCalled := false
			var approver string
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				approver = GetApproverFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := ApproverMiddleware(mockTokener, "Admin")(nextHandler)

			req := httptest.NewRequest(http.MethodPatch, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
			assert.Equal(t, tt.expectedApprover, approver)
		})
	}
}

func TestApproverMiddleware_NilTokener(t *testing.T) {
	var approver string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		approver = GetApproverFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rr := httptest.NewRecorder()

	ApproverMiddleware(nil, "Admin")(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Admin", approver)
}
