package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/finance-flow/internal/models"
)

func TestCategoryService_ListActive(t *testing.T) {
	ctx := context.Background()
	income := []models.Category{{ID: 3, Name: "Investment"}, {ID: 4, Name: "Other Income"}, {ID: 1, Name: "Salary"}}

	tests := []struct {
		name    string
		txnType string
		setup   func(reader *MockCategoryReader, cache *MockCategoryCache)
		want    []models.Category
		wantErr error
	}{
		{
			name:    "cache hit",
			txnType: "income",
			setup: func(reader *MockCategoryReader, cache *MockCategoryCache) {
				cache.EXPECT().GetActive(ctx, "income").Return(income, nil)
			},
			want: income,
		},
		{
			name:    "cache miss reads and fills",
			txnType: "Income",
			setup: func(reader *MockCategoryReader, cache *MockCategoryCache) {
				cache.EXPECT().GetActive(ctx, "income").Return(nil, errors.New("cache miss"))
				reader.EXPECT().ListActive(ctx, "income").Return(income, nil)
				cache.EXPECT().SetActive(ctx, "income", income).Return(nil)
			},
			want: income,
		},
		{
			name:    "cache write failure is ignored",
			txnType: "expense",
			setup: func(reader *MockCategoryReader, cache *MockCategoryCache) {
				cache.EXPECT().GetActive(ctx, "expense").Return(nil, errors.New("redis down"))
				reader.EXPECT().ListActive(ctx, "expense").Return([]models.Category{}, nil)
				cache.EXPECT().SetActive(ctx, "expense", []models.Category{}).Return(errors.New("redis down"))
			},
			want: []models.Category{},
		},
		{
			name:    "database unavailable",
			txnType: "expense",
			setup: func(reader *MockCategoryReader, cache *MockCategoryCache) {
				cache.EXPECT().GetActive(ctx, "expense").Return(nil, errors.New("cache miss"))
				reader.EXPECT().ListActive(ctx, "expense").Return(nil, errors.New("connection refused"))
			},
			wantErr: ErrStorageUnavailable,
		},
		{
			name:    "unknown type",
			txnType: "transfer",
			setup:   func(reader *MockCategoryReader, cache *MockCategoryCache) {},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := NewMockCategoryReader(ctrl)
			cache := NewMockCategoryCache(ctrl)
			tt.setup(reader, cache)

			svc := NewCategoryService(reader, cache)
			got, err := svc.ListActive(ctx, tt.txnType)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryService_ListActive_NoCache(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	reader := NewMockCategoryReader(ctrl)

	want := []models.Category{{ID: 5, Name: "Transport"}}
	reader.EXPECT().ListActive(ctx, "expense").Return(want, nil)

	svc := NewCategoryService(reader, nil)
	got, err := svc.ListActive(ctx, " EXPENSE ")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
