package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/finance-flow/internal/middlewares"
	"github.com/sbilibin2017/finance-flow/internal/models"
	"github.com/sbilibin2017/finance-flow/internal/services"
)

func TestApproveTransactionHandler(t *testing.T) {
	approver := "Admin"
	approvedAt := time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC)
	completed := pendingTxn()
	completed.Status = models.StatusCompleted
	completed.ApprovedBy = &approver
	completed.ApprovedAt = &approvedAt

	tests := []struct {
		name               string
		id                 string
		setupMocks         func(m *MockTransactionApprover)
		expectedStatusCode int
		expectedKey        string
	}{
		{
			name: "successful approve",
			id:   "TRX070524000001",
			setupMocks: func(m *MockTransactionApprover) {
				m.EXPECT().Approve(gomock.Any(), "TRX070524000001", "Admin").Return(completed, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedKey:        "message",
		},
		{
			name: "not found",
			id:   "TRX000000000000",
			setupMocks: func(m *MockTransactionApprover) {
				m.EXPECT().Approve(gomock.Any(), "TRX000000000000", "Admin").Return(nil, services.ErrNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
			expectedKey:        "error",
		},
		{
			name: "already approved",
			id:   "TRX070524000001",
			setupMocks: func(m *MockTransactionApprover) {
				m.EXPECT().Approve(gomock.Any(), "TRX070524000001", "Admin").Return(nil, services.ErrAlreadyApproved)
			},
			expectedStatusCode: http.StatusConflict,
			expectedKey:        "error",
		},
		{
			name: "storage unavailable",
			id:   "TRX070524000001",
			setupMocks: func(m *MockTransactionApprover) {
				m.EXPECT().Approve(gomock.Any(), "TRX070524000001", "Admin").
					Return(nil, fmt.Errorf("%w: timeout", services.ErrStorageUnavailable))
			},
			expectedStatusCode: http.StatusServiceUnavailable,
			expectedKey:        "error",
		},
		{
			name: "unexpected error",
			id:   "TRX070524000001",
			setupMocks: func(m *MockTransactionApprover) {
				m.EXPECT().Approve(gomock.Any(), "TRX070524000001", "Admin").Return(nil, errors.New("boom"))
			},
			expectedStatusCode: http.StatusInternalServerError,
			expectedKey:        "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockApprover := NewMockTransactionApprover(ctrl)
			tt.setupMocks(mockApprover)

			r := chi.NewRouter()
			r.With(middlewares.ApproverMiddleware(nil, "Admin")).
				Patch("/api/transactions/{id}/approve", NewApproveTransactionHandler(mockApprover))

			req := httptest.NewRequest(http.MethodPatch, "/api/transactions/"+tt.id+"/approve", nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatusCode, w.Code)

			var resp map[string]any
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Contains(t, resp, tt.expectedKey)
			if tt.expectedStatusCode == http.StatusOK {
				assert.Equal(t, "Approved!", resp["message"])
				txn := resp["transaction"].(map[string]any)
				assert.Equal(t, "Completed", txn["status"])
				assert.Equal(t, "Admin", txn["approved_by"])
			}
		})
	}
}
