package progress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_progress "github.com/speedreading/trainer/internal/mocks/progress"
	"github.com/speedreading/trainer/internal/progress"
)

func TestLedger_IsBlockComplete(t *testing.T) {
	errStore := errors.New("connection refused")

	tests := []struct {
		name      string
		setup     func(index *mock_progress.MockExerciseIndex, store *mock_progress.MockLedgerStore)
		want      bool
		wantErr   error
		wantCheck bool
	}{
		{
			name: "empty block is complete",
			setup: func(index *mock_progress.MockExerciseIndex, store *mock_progress.MockLedgerStore) {
				index.EXPECT().ActiveExerciseCodes(gomock.Any(), 2).Return(nil, nil)
			},
			want: true,
		},
		{
			name: "all exercises completed",
			setup: func(index *mock_progress.MockExerciseIndex, store *mock_progress.MockLedgerStore) {
				index.EXPECT().ActiveExerciseCodes(gomock.Any(), 2).Return([]string{"EL1_N4", "EO1_N4"}, nil)
				store.EXPECT().CompletedExerciseCodes(gomock.Any(), int64(7), []string{"EL1_N4", "EO1_N4"}).
					Return(map[string]bool{"EL1_N4": true, "EO1_N4": true}, nil)
			},
			want: true,
		},
		{
			name: "one exercise missing",
			setup: func(index *mock_progress.MockExerciseIndex, store *mock_progress.MockLedgerStore) {
				index.EXPECT().ActiveExerciseCodes(gomock.Any(), 2).Return([]string{"EL1_N4", "EO1_N4"}, nil)
				store.EXPECT().CompletedExerciseCodes(gomock.Any(), int64(7), gomock.Any()).
					Return(map[string]bool{"EL1_N4": true}, nil)
			},
			want: false,
		},
		{
			name: "store failure propagates",
			setup: func(index *mock_progress.MockExerciseIndex, store *mock_progress.MockLedgerStore) {
				index.EXPECT().ActiveExerciseCodes(gomock.Any(), 2).Return([]string{"EL1_N4"}, nil)
				store.EXPECT().CompletedExerciseCodes(gomock.Any(), int64(7), gomock.Any()).Return(nil, errStore)
			},
			wantErr: errStore,
		},
		{
			name: "index failure propagates",
			setup: func(index *mock_progress.MockExerciseIndex, store *mock_progress.MockLedgerStore) {
				index.EXPECT().ActiveExerciseCodes(gomock.Any(), 2).Return(nil, errStore)
			},
			wantErr: errStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			index := mock_progress.NewMockExerciseIndex(ctrl)
			store := mock_progress.NewMockLedgerStore(ctrl)
			tt.setup(index, store)

			got, err := progress.NewLedger(store, index).IsBlockComplete(context.Background(), 7, 2)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLedger_IncompleteExercises(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mock_progress.NewMockExerciseIndex(ctrl)
	store := mock_progress.NewMockLedgerStore(ctrl)

	index.EXPECT().ActiveExerciseCodes(gomock.Any(), 1).Return([]string{"EL1_N1", "EL1_N2", "EO1_N1"}, nil)
	store.EXPECT().CompletedExerciseCodes(gomock.Any(), int64(7), gomock.Any()).Return(map[string]bool{"EL1_N2": true}, nil)

	got, err := progress.NewLedger(store, index).IncompleteExercises(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"EL1_N1", "EO1_N1"}, got)
}

func TestLedger_MarkExerciseCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_progress.NewMockLedgerStore(ctrl)
	store.EXPECT().MarkExerciseCompleted(gomock.Any(), int64(7), "EL1_N1", gomock.Any()).Return(nil).Times(2)

	ledger := progress.NewLedger(store, mock_progress.NewMockExerciseIndex(ctrl))
	require.NoError(t, ledger.MarkExerciseCompleted(context.Background(), 7, "EL1_N1"))
	require.NoError(t, ledger.MarkExerciseCompleted(context.Background(), 7, "EL1_N1"))
}

func TestLedger_Summary(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		records    []progress.TestProgress
		byCategory map[string]int
		want       progress.Summary
		wantLast   string
	}{
		{
			name:       "no progress",
			byCategory: map[string]int{},
			want:       progress.Summary{UserID: 7, ExercisesByCategory: map[string]int{}},
		},
		{
			name: "averages completed tests",
			records: []progress.TestProgress{
				{TestName: "test_1", ReadingSpeedWPM: 350, MemorizationSpeedWPM: 200, Completed: true, CompletedAt: at.Add(time.Hour)},
				{TestName: "initial", ReadingSpeedWPM: 250, MemorizationSpeedWPM: 240, Completed: true, CompletedAt: at},
				{TestName: "test_2", ReadingSpeedWPM: 900, Completed: false, CompletedAt: at.Add(2 * time.Hour)},
			},
			byCategory: map[string]int{"EL": 3, "EO": 2},
			want: progress.Summary{
				UserID:                7,
				TestsCompleted:        2,
				BestReadingSpeed:      350,
				BestMemorizationSpeed: 240,
				AverageReadingSpeed:   300,
				ExercisesCompleted:    5,
				ExercisesByCategory:   map[string]int{"EL": 3, "EO": 2},
			},
			wantLast: "test_1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mock_progress.NewMockLedgerStore(ctrl)
			store.EXPECT().ListTestProgress(gomock.Any(), int64(7)).Return(tt.records, nil)
			store.EXPECT().CompletedExercisesByCategory(gomock.Any(), int64(7)).Return(tt.byCategory, nil)

			got, err := progress.NewLedger(store, mock_progress.NewMockExerciseIndex(ctrl)).Summary(context.Background(), 7)
			require.NoError(t, err)

			if tt.wantLast == "" {
				assert.Nil(t, got.LastTest)
			} else {
				require.NotNil(t, got.LastTest)
				assert.Equal(t, tt.wantLast, got.LastTest.TestName)
			}
			got.LastTest = nil
			assert.Equal(t, tt.want, *got)
		})
	}
}
