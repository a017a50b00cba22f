package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"newmeclass_backend/internals/configs"
	"newmeclass_backend/internals/features/tests/analysis"
	qrepo "newmeclass_backend/internals/features/tests/questions/repository"
	"newmeclass_backend/internals/features/tests/results/model"
	"newmeclass_backend/internals/features/tests/scoring"
	userModel "newmeclass_backend/internals/features/users/user/model"
	helper "newmeclass_backend/internals/helpers"
)

const (
	TierFree = "free"
	TierPaid = "paid"
)

var (
	ErrInvalidTier     = errors.New("tier harus free atau paid")
	ErrUserNotFound    = errors.New("user tidak ditemukan")
	ErrFreeTestTaken   = errors.New("Anda sudah mengambil tes gratis")
	ErrPaymentRequired = errors.New("Silakan selesaikan pembayaran untuk mengakses tes premium")
	ErrAttemptNotFound = errors.New("hasil tes tidak ditemukan")
)

type CatalogProvider interface {
	Questions(ctx context.Context, tier string) ([]scoring.Question, error)
}

type TestService struct {
	DB         *gorm.DB
	Catalog    CatalogProvider
	Classifier *analysis.Classifier
}

func NewTestService(db *gorm.DB, catalog CatalogProvider, classifier *analysis.Classifier) *TestService {
	return &TestService{DB: db, Catalog: catalog, Classifier: classifier}
}

// NewDefaultTestService: katalog dari DB, model dipakai hanya kalau LLM_API_KEY diset.
func NewDefaultTestService(db *gorm.DB) *TestService {
	engine := scoring.NewEngine(scoring.DefaultTemplates(), configs.MaxPointsPerQ)

	var llm analysis.LLM
	if configs.LLMAPIKey != "" {
		llm = analysis.NewClient(configs.LLMAPIKey, configs.LLMModel, configs.LLMEndpoint, configs.LLMTimeout)
	}
	return NewTestService(db, qrepo.NewCatalog(db), analysis.NewClassifier(engine, llm))
}

/* =========================================================
   ACCESS
========================================================= */

type Access struct {
	CanTakeFreeTest  bool   `json:"can_take_free_test"`
	HasTakenFreeTest bool   `json:"has_taken_free_test"`
	CanTakePaidTest  bool   `json:"can_take_paid_test"`
	PaymentStatus    string `json:"payment_status"`
	Message          string `json:"message"`
}

func hasFreeAttempt(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&model.TestAttemptModel{}).
		Where("test_attempt_user_id = ? AND test_attempt_tier = ?", userID, TierFree).
		Count(&n).Error
	return n > 0, err
}

func loadUser(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := db.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *TestService) Access(ctx context.Context, userID uuid.UUID) (Access, error) {
	db := s.DB.WithContext(ctx)
	u, err := loadUser(db, userID)
	if err != nil {
		return Access{}, err
	}
	taken, err := hasFreeAttempt(db, userID)
	if err != nil {
		return Access{}, err
	}

	a := Access{
		CanTakeFreeTest:  !taken,
		HasTakenFreeTest: taken,
		CanTakePaidTest:  u.PaymentStatus == userModel.PaymentStatusApproved,
		PaymentStatus:    u.PaymentStatus,
	}
	switch {
	case a.CanTakePaidTest:
		a.Message = "Anda dapat mengambil tes premium"
	case a.CanTakeFreeTest:
		a.Message = "Anda dapat mengambil tes gratis"
	default:
		a.Message = "Anda sudah mengambil tes gratis. Upgrade ke premium untuk tes lengkap"
	}
	return a, nil
}

/* =========================================================
   SUBMIT
========================================================= */

type SubmitInput struct {
	UserID  uuid.UUID
	Tier    string
	Answers []scoring.Answer
}

// Submit: cek akses → klasifikasi → simpan attempt + update status tes user.
// Error engine (ErrNoValidAnswers / ErrClassificationNotFound) dikembalikan apa adanya.
func (s *TestService) Submit(ctx context.Context, in SubmitInput) (*model.TestAttemptModel, error) {
	if in.Tier != TierFree && in.Tier != TierPaid {
		return nil, ErrInvalidTier
	}
	db := s.DB.WithContext(ctx)

	u, err := loadUser(db, in.UserID)
	if err != nil {
		return nil, err
	}
	switch in.Tier {
	case TierFree:
		taken, err := hasFreeAttempt(db, in.UserID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrFreeTestTaken
		}
	case TierPaid:
		if u.PaymentStatus != userModel.PaymentStatusApproved {
			return nil, ErrPaymentRequired
		}
	}

	catalog, err := s.Catalog.Questions(ctx, in.Tier)
	if err != nil {
		return nil, err
	}

	cls, err := s.Classifier.Classify(ctx, analysis.Input{
		UserName: u.FullName,
		Tier:     in.Tier,
		Answers:  in.Answers,
		Catalog:  catalog,
	})
	if err != nil {
		if errors.Is(err, scoring.ErrClassificationNotFound) {
			log.Printf("[ERROR] ❌ template klasifikasi tidak ada (user=%s tier=%s): %v", in.UserID, in.Tier, err)
		}
		return nil, err
	}

	attempt := model.TestAttemptModel{
		TestAttemptUserID:        in.UserID,
		TestAttemptTier:          in.Tier,
		TestAttemptAnswers:       datatypes.JSONSlice[scoring.Answer](in.Answers),
		TestAttemptResult:        datatypes.NewJSONType(cls),
		TestAttemptDominantLabel: dominantLabel(cls),
		TestAttemptSource:        cls.Source,
	}

	statusCol := "free_test_status"
	if in.Tier == TierPaid {
		statusCol = "paid_test_status"
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			if in.Tier == TierFree && helper.IsUniqueViolation(err) {
				return ErrFreeTestTaken
			}
			return err
		}
		return tx.Model(&userModel.UserModel{}).
			Where("id = ?", in.UserID).
			Update(statusCol, userModel.TestStatusCompleted).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] ✅ Tes %s selesai: user=%s dominan=%s sumber=%s", in.Tier, in.UserID, attempt.TestAttemptDominantLabel, attempt.TestAttemptSource)
	return &attempt, nil
}

// label dominan: dimensi skor teratas, kalau kosong pakai elemen dari model.
func dominantLabel(c analysis.Classification) string {
	if len(c.Scores) > 0 {
		return c.Scores[0].Dimension
	}
	return c.DominantElement
}

/* =========================================================
   RESULTS
========================================================= */

func (s *TestService) Latest(ctx context.Context, userID uuid.UUID, tier string) (*model.TestAttemptModel, error) {
	q := s.DB.WithContext(ctx).Where("test_attempt_user_id = ?", userID)
	if tier != "" {
		q = q.Where("test_attempt_tier = ?", tier)
	}
	var m model.TestAttemptModel
	if err := q.Order("test_attempt_created_at DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Get: hanya milik user sendiri.
func (s *TestService) Get(ctx context.Context, userID, attemptID uuid.UUID) (*model.TestAttemptModel, error) {
	var m model.TestAttemptModel
	err := s.DB.WithContext(ctx).
		Where("test_attempt_id = ? AND test_attempt_user_id = ?", attemptID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	return &m, nil
}

type Stats struct {
	TotalAttempts int64            `json:"total_attempts"`
	ByTier        map[string]int64 `json:"by_tier"`
	ByDominant    map[string]int64 `json:"by_dominant"`
}

type groupCount struct {
	Label string
	Total int64
}

func (s *TestService) Stats(ctx context.Context) (Stats, error) {
	db := s.DB.WithContext(ctx)
	out := Stats{ByTier: map[string]int64{}, ByDominant: map[string]int64{}}

	var tiers []groupCount
	if err := db.Model(&model.TestAttemptModel{}).
		Select("test_attempt_tier AS label, COUNT(*) AS total").
		Group("test_attempt_tier").Scan(&tiers).Error; err != nil {
		return out, err
	}
	for _, g := range tiers {
		out.ByTier[g.Label] = g.Total
		out.TotalAttempts += g.Total
	}

	var labels []groupCount
	if err := db.Model(&model.TestAttemptModel{}).
		Select("test_attempt_dominant_label AS label, COUNT(*) AS total").
		Group("test_attempt_dominant_label").Scan(&labels).Error; err != nil {
		return out, err
	}
	for _, g := range labels {
		out.ByDominant[g.Label] = g.Total
	}
	return out, nil
}
