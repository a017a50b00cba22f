package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"newmeclass_backend/internals/databases/dbtest"
	"newmeclass_backend/internals/features/tests/analysis"
	qmodel "newmeclass_backend/internals/features/tests/questions/model"
	qrepo "newmeclass_backend/internals/features/tests/questions/repository"
	"newmeclass_backend/internals/features/tests/results/model"
	"newmeclass_backend/internals/features/tests/scoring"
	userModel "newmeclass_backend/internals/features/users/user/model"
	helper "newmeclass_backend/internals/helpers"
)

type stubLLM struct {
	out   analysis.Outcome
	calls int
}

func (s *stubLLM) Classify(context.Context, analysis.Transcript) analysis.Outcome {
	s.calls++
	return s.out
}

type fixture struct {
	db   *gorm.DB
	svc  *TestService
	q1   qmodel.QuestionModel
	q2   qmodel.QuestionModel
	paid qmodel.QuestionModel
}

func setup(t *testing.T, llm analysis.LLM) fixture {
	db := dbtest.Open(t, &userModel.UserModel{}, &qmodel.QuestionModel{}, &model.TestAttemptModel{})
	require.NoError(t, model.EnsureIndexes(db))

	f := fixture{db: db}
	f.q1 = qmodel.QuestionModel{QuestionText: "Saat ada masalah", QuestionCategory: "personality", QuestionTier: qmodel.TierFree, QuestionOrder: 1,
		QuestionOptions: []scoring.Option{{Value: "A", Label: "Bertindak", DimensionScores: map[string]int{"api": 5}}}}
	f.q2 = qmodel.QuestionModel{QuestionText: "Di akhir pekan", QuestionCategory: "personality", QuestionTier: qmodel.TierFree, QuestionOrder: 2,
		QuestionOptions: []scoring.Option{{Value: "B", Label: "Berkebun", DimensionScores: map[string]int{"api": 3, "tanah": 2}}}}
	f.paid = qmodel.QuestionModel{QuestionText: "Bakat utama", QuestionCategory: "talent", QuestionTier: qmodel.TierPaid,
		QuestionOptions: []scoring.Option{{Value: "A", Label: "Menulis", Score: 4}}}
	for _, q := range []*qmodel.QuestionModel{&f.q1, &f.q2, &f.paid} {
		require.NoError(t, db.Create(q).Error)
	}

	engine := scoring.NewEngine(scoring.DefaultTemplates(), 4)
	f.svc = NewTestService(db, qrepo.NewCatalog(db), analysis.NewClassifier(engine, llm))
	return f
}

func createUser(t *testing.T, db *gorm.DB, code, payment string) userModel.UserModel {
	u := userModel.UserModel{
		Email:         code + "@mail.test",
		Password:      "x",
		FullName:      "User " + code,
		ReferralCode:  code,
		PaymentStatus: payment,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func (f fixture) freeAnswers() []scoring.Answer {
	return []scoring.Answer{
		{QuestionID: f.q1.QuestionID.String(), SelectedValue: "A"},
		{QuestionID: f.q2.QuestionID.String(), SelectedValue: "B"},
	}
}

func TestSubmitFree_PersistsAndBlocksSecondAttempt(t *testing.T) {
	f := setup(t, nil)
	u := createUser(t, f.db, "SARI01", userModel.PaymentStatusUnpaid)
	ctx := context.Background()

	attempt, err := f.svc.Submit(ctx, SubmitInput{UserID: u.ID, Tier: TierFree, Answers: f.freeAnswers()})
	require.NoError(t, err)
	assert.Equal(t, "api", attempt.TestAttemptDominantLabel)
	assert.Equal(t, analysis.SourceRules, attempt.TestAttemptSource)

	res := attempt.TestAttemptResult.Data()
	require.NotEmpty(t, res.Scores)
	assert.Equal(t, 8, res.Scores[0].Total)

	var stored userModel.UserModel
	require.NoError(t, f.db.First(&stored, "id = ?", u.ID).Error)
	assert.Equal(t, userModel.TestStatusCompleted, stored.FreeTestStatus)

	_, err = f.svc.Submit(ctx, SubmitInput{UserID: u.ID, Tier: TierFree, Answers: f.freeAnswers()})
	assert.ErrorIs(t, err, ErrFreeTestTaken)

	var n int64
	require.NoError(t, f.db.Model(&model.TestAttemptModel{}).Where("test_attempt_user_id = ?", u.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestFreeAttemptUniqueIndex(t *testing.T) {
	f := setup(t, nil)
	userID := uuid.New()

	first := model.TestAttemptModel{TestAttemptUserID: userID, TestAttemptTier: TierFree, TestAttemptSource: analysis.SourceRules}
	require.NoError(t, f.db.Create(&first).Error)

	dup := model.TestAttemptModel{TestAttemptUserID: userID, TestAttemptTier: TierFree, TestAttemptSource: analysis.SourceRules}
	err := f.db.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, helper.IsUniqueViolation(err))

	for i := 0; i < 2; i++ {
		paid := model.TestAttemptModel{TestAttemptUserID: userID, TestAttemptTier: TierPaid, TestAttemptSource: analysis.SourceRules}
		require.NoError(t, f.db.Create(&paid).Error)
	}
}

func TestSubmitPaid_RequiresApprovedPayment(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()
	answers := []scoring.Answer{{QuestionID: f.paid.QuestionID.String(), SelectedValue: "A"}}

	unpaid := createUser(t, f.db, "UNPAID", userModel.PaymentStatusPending)
	_, err := f.svc.Submit(ctx, SubmitInput{UserID: unpaid.ID, Tier: TierPaid, Answers: answers})
	assert.ErrorIs(t, err, ErrPaymentRequired)

	paid := createUser(t, f.db, "PAID01", userModel.PaymentStatusApproved)
	for i := 0; i < 2; i++ {
		attempt, err := f.svc.Submit(ctx, SubmitInput{UserID: paid.ID, Tier: TierPaid, Answers: answers})
		require.NoError(t, err)
		assert.Equal(t, "talent", attempt.TestAttemptDominantLabel)
	}

	var stored userModel.UserModel
	require.NoError(t, f.db.First(&stored, "id = ?", paid.ID).Error)
	assert.Equal(t, userModel.TestStatusCompleted, stored.PaidTestStatus)
}

func TestSubmit_InputErrorsStoreNothing(t *testing.T) {
	f := setup(t, nil)
	u := createUser(t, f.db, "EMPTY1", userModel.PaymentStatusUnpaid)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, SubmitInput{UserID: u.ID, Tier: TierFree, Answers: []scoring.Answer{{QuestionID: uuid.NewString(), SelectedValue: "A"}}})
	assert.ErrorIs(t, err, scoring.ErrNoValidAnswers)

	// soal paid tidak ada di katalog free
	_, err = f.svc.Submit(ctx, SubmitInput{UserID: u.ID, Tier: TierFree, Answers: []scoring.Answer{{QuestionID: f.paid.QuestionID.String(), SelectedValue: "A"}}})
	assert.ErrorIs(t, err, scoring.ErrNoValidAnswers)

	_, err = f.svc.Submit(ctx, SubmitInput{UserID: u.ID, Tier: "gold"})
	assert.ErrorIs(t, err, ErrInvalidTier)

	_, err = f.svc.Submit(ctx, SubmitInput{UserID: uuid.New(), Tier: TierFree, Answers: f.freeAnswers()})
	assert.ErrorIs(t, err, ErrUserNotFound)

	var n int64
	require.NoError(t, f.db.Model(&model.TestAttemptModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSubmit_ModelResultAndFallback(t *testing.T) {
	t.Run("model succeeds", func(t *testing.T) {
		llm := &stubLLM{out: analysis.Succeeded(analysis.Classification{
			Source:          analysis.SourceAI,
			PersonalityType: "EXTROVERT",
			DominantElement: "API",
			Summary:         "dari model",
		})}
		f := setup(t, llm)
		u := createUser(t, f.db, "MODEL1", userModel.PaymentStatusUnpaid)

		attempt, err := f.svc.Submit(context.Background(), SubmitInput{UserID: u.ID, Tier: TierFree, Answers: f.freeAnswers()})
		require.NoError(t, err)
		assert.Equal(t, 1, llm.calls)
		assert.Equal(t, analysis.SourceAI, attempt.TestAttemptSource)
		assert.Equal(t, "dari model", attempt.TestAttemptResult.Data().Summary)
		assert.Equal(t, "api", attempt.TestAttemptDominantLabel)
	})

	t.Run("model fails", func(t *testing.T) {
		llm := &stubLLM{out: analysis.Failed(errors.New("timeout"))}
		f := setup(t, llm)
		u := createUser(t, f.db, "MODEL2", userModel.PaymentStatusUnpaid)

		attempt, err := f.svc.Submit(context.Background(), SubmitInput{UserID: u.ID, Tier: TierFree, Answers: f.freeAnswers()})
		require.NoError(t, err)
		assert.Equal(t, analysis.SourceRules, attempt.TestAttemptSource)
	})
}

func TestAccessLatestAndStats(t *testing.T) {
	f := setup(t, nil)
	u := createUser(t, f.db, "ACCES1", userModel.PaymentStatusUnpaid)
	ctx := context.Background()

	a, err := f.svc.Access(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, a.CanTakeFreeTest)
	assert.False(t, a.HasTakenFreeTest)
	assert.False(t, a.CanTakePaidTest)

	_, err = f.svc.Latest(ctx, u.ID, TierFree)
	assert.ErrorIs(t, err, ErrAttemptNotFound)

	attempt, err := f.svc.Submit(ctx, SubmitInput{UserID: u.ID, Tier: TierFree, Answers: f.freeAnswers()})
	require.NoError(t, err)

	a, err = f.svc.Access(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, a.CanTakeFreeTest)
	assert.True(t, a.HasTakenFreeTest)

	latest, err := f.svc.Latest(ctx, u.ID, "")
	require.NoError(t, err)
	assert.Equal(t, attempt.TestAttemptID, latest.TestAttemptID)

	_, err = f.svc.Get(ctx, uuid.New(), attempt.TestAttemptID)
	assert.ErrorIs(t, err, ErrAttemptNotFound)

	st, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.TotalAttempts)
	assert.EqualValues(t, 1, st.ByTier[TierFree])
	assert.EqualValues(t, 1, st.ByDominant["api"])
}
