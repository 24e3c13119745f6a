package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/speedreading/trainer/internal/access"
	"github.com/speedreading/trainer/internal/account"
	"github.com/speedreading/trainer/internal/catalog"
	mock_access "github.com/speedreading/trainer/internal/mocks/access"
)

var (
	freeUser  = account.User{ID: 7, Role: account.RoleRegular, Tier: account.TierFree}
	proUser   = account.User{ID: 7, Role: account.RoleRegular, Tier: account.TierPro}
	adminUser = account.User{ID: 1, Role: account.RoleAdministrator, Tier: account.TierFree}
)

func exercise(t *testing.T, level int, active bool) catalog.ExerciseDefinition {
	t.Helper()
	e, err := catalog.NewExerciseDefinition(catalog.ExerciseCode("EL1", level), "EL", "Digits", level, 1)
	require.NoError(t, err)
	e.Active = active
	return e
}

func TestEvaluator_CanAccessExercise(t *testing.T) {
	errStore := errors.New("connection refused")

	tests := []struct {
		name        string
		user        account.User
		level       int
		inactive    bool
		setup       func(m *mock_access.MockCompletionChecker)
		wantAllowed bool
		wantReasons []string
		wantErr     error
	}{
		{
			name:        "inactive exercise short-circuits",
			user:        adminUser,
			level:       5,
			inactive:    true,
			wantReasons: []string{"exercise unavailable"},
		},
		{
			name:        "administrator bypasses every check",
			user:        adminUser,
			level:       9,
			wantAllowed: true,
			wantReasons: []string{},
		},
		{
			name:        "block 1 has no prerequisite",
			user:        freeUser,
			level:       2,
			wantAllowed: true,
			wantReasons: []string{},
		},
		{
			name:  "free user on level 5 with prerequisites met",
			user:  freeUser,
			level: 5,
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_1").Return(true, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 1).Return(true, nil)
			},
			wantReasons: []string{"requires elevated tier"},
		},
		{
			name:  "free user on level 5 lists every reason",
			user:  freeUser,
			level: 5,
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_1").Return(false, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 1).Return(false, nil)
			},
			wantReasons: []string{"requires elevated tier", "must complete test test_1", "must complete all exercises in block 1"},
		},
		{
			name:  "pro user on level 8 missing block 2",
			user:  proUser,
			level: 8,
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_2").Return(true, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 1).Return(true, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 2).Return(false, nil)
			},
			wantReasons: []string{"must complete all exercises in block 2"},
		},
		{
			name:  "pro user on level 4 with prerequisites met",
			user:  proUser,
			level: 4,
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_1").Return(true, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 1).Return(true, nil)
			},
			wantAllowed: true,
			wantReasons: []string{},
		},
		{
			name:  "store failure is an error, not a denial",
			user:  proUser,
			level: 4,
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_1").Return(false, errStore)
			},
			wantErr: errStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			checker := mock_access.NewMockCompletionChecker(ctrl)
			if tt.setup != nil {
				tt.setup(checker)
			}
			evaluator := access.NewEvaluator(access.DefaultRules(), checker)

			got, err := evaluator.CanAccessExercise(context.Background(), tt.user, exercise(t, tt.level, !tt.inactive))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, got.Allowed)
			assert.Equal(t, tt.wantReasons, got.ReasonStrings())
		})
	}
}

func TestEvaluator_CanAccessTest(t *testing.T) {
	code := "open-sesame"
	wrongCode := "guess"
	errStore := errors.New("connection refused")

	tests := []struct {
		name        string
		user        account.User
		test        catalog.TestDefinition
		code        *string
		setup       func(m *mock_access.MockCompletionChecker)
		wantAllowed bool
		wantReason  string
		wantErr     error
	}{
		{
			name:       "inactive test",
			user:       adminUser,
			test:       catalog.TestDefinition{Name: "initial"},
			wantReason: "test unavailable",
		},
		{
			name:        "administrator bypasses tier, code and progression",
			user:        adminUser,
			test:        catalog.TestDefinition{Name: "test_2", Active: true, RequiresElevatedTier: true, RequiresAccessCode: true, AccessCode: code},
			wantAllowed: true,
		},
		{
			name:       "free user on elevated test",
			user:       freeUser,
			test:       catalog.TestDefinition{Name: "test_2", Active: true, RequiresElevatedTier: true},
			wantReason: "requires elevated tier",
		},
		{
			name:       "missing access code",
			user:       proUser,
			test:       catalog.TestDefinition{Name: "initial", Active: true, RequiresAccessCode: true, AccessCode: code},
			wantReason: "incorrect access code",
		},
		{
			name:       "wrong access code",
			user:       proUser,
			test:       catalog.TestDefinition{Name: "initial", Active: true, RequiresAccessCode: true, AccessCode: code},
			code:       &wrongCode,
			wantReason: "incorrect access code",
		},
		{
			name:        "entry test with the right code",
			user:        freeUser,
			test:        catalog.TestDefinition{Name: "initial", Active: true, RequiresAccessCode: true, AccessCode: code},
			code:        &code,
			wantAllowed: true,
		},
		{
			name: "test_1 before initial",
			user: freeUser,
			test: catalog.TestDefinition{Name: "test_1", Active: true},
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "initial").Return(false, nil)
			},
			wantReason: "must complete Initial Test first",
		},
		{
			name: "test_1 before block 1",
			user: freeUser,
			test: catalog.TestDefinition{Name: "test_1", Active: true},
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "initial").Return(true, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 1).Return(false, nil)
			},
			wantReason: "must complete all Block 1 exercises",
		},
		{
			name: "test_1 open",
			user: freeUser,
			test: catalog.TestDefinition{Name: "test_1", Active: true},
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "initial").Return(true, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 1).Return(true, nil)
			},
			wantAllowed: true,
		},
		{
			name: "test_2 before test_1",
			user: proUser,
			test: catalog.TestDefinition{Name: "test_2", Active: true},
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_1").Return(false, nil)
			},
			wantReason: "must complete Test 1 first",
		},
		{
			name: "test_2 before block 2",
			user: proUser,
			test: catalog.TestDefinition{Name: "test_2", Active: true},
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_1").Return(true, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 2).Return(false, nil)
			},
			wantReason: "must complete all Block 2 exercises",
		},
		{
			name: "other test before test_2",
			user: proUser,
			test: catalog.TestDefinition{Name: "final", Active: true},
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_2").Return(false, nil)
			},
			wantReason: "must complete Test 2 first",
		},
		{
			name: "other test before block 3",
			user: proUser,
			test: catalog.TestDefinition{Name: "final", Active: true},
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_2").Return(true, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 3).Return(false, nil)
			},
			wantReason: "must complete all Block 3 exercises",
		},
		{
			name: "store failure",
			user: proUser,
			test: catalog.TestDefinition{Name: "test_2", Active: true},
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_1").Return(true, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 2).Return(false, errStore)
			},
			wantErr: errStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			checker := mock_access.NewMockCompletionChecker(ctrl)
			if tt.setup != nil {
				tt.setup(checker)
			}
			evaluator := access.NewEvaluator(access.DefaultRules(), checker)

			got, err := evaluator.CanAccessTest(context.Background(), tt.user, tt.test, tt.code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, got.Allowed)
			assert.Equal(t, tt.wantReason, got.ReasonString())
		})
	}
}

func TestEvaluator_IsBlockSatisfied(t *testing.T) {
	tests := []struct {
		name  string
		block int
		setup func(m *mock_access.MockCompletionChecker)
		want  bool
	}{
		{name: "no prerequisite", block: 1, want: true},
		{
			name:  "both parts met",
			block: 2,
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_1").Return(true, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 1).Return(true, nil)
			},
			want: true,
		},
		{
			name:  "test met, block missing",
			block: 2,
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_1").Return(true, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 1).Return(false, nil)
			},
			want: false,
		},
		{
			name:  "block met, test missing",
			block: 2,
			setup: func(m *mock_access.MockCompletionChecker) {
				m.EXPECT().HasCompletedTest(gomock.Any(), int64(7), "test_1").Return(false, nil)
				m.EXPECT().IsBlockComplete(gomock.Any(), int64(7), 1).Return(true, nil)
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			checker := mock_access.NewMockCompletionChecker(ctrl)
			if tt.setup != nil {
				tt.setup(checker)
			}

			got, err := access.NewEvaluator(access.DefaultRules(), checker).IsBlockSatisfied(context.Background(), 7, tt.block)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
