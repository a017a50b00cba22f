package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	qrepo "newmeclass_backend/internals/features/tests/questions/repository"
	"newmeclass_backend/internals/features/tests/results/model"
	"newmeclass_backend/internals/features/tests/results/service"
	"newmeclass_backend/internals/features/tests/scoring"
	helper "newmeclass_backend/internals/helpers"
)

var validate = validator.New()

type TestController struct {
	Svc       *service.TestService
	Templates scoring.StaticTemplates
}

func NewTestController(svc *service.TestService) *TestController {
	return &TestController{Svc: svc, Templates: scoring.DefaultTemplates()}
}

type SubmitTestRequest struct {
	Tier    string           `json:"tier" validate:"required,oneof=free paid"`
	Answers []scoring.Answer `json:"answers" validate:"required,min=1,dive"`
}

// testError: sentinel service → status HTTP.
func testError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidTier):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrAttemptNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrFreeTestTaken):
		return helper.JsonErrorCode(c, fiber.StatusForbidden, "FREE_TEST_USED", err.Error())
	case errors.Is(err, service.ErrPaymentRequired):
		return helper.JsonErrorCode(c, fiber.StatusPaymentRequired, "PAYMENT_REQUIRED", err.Error())
	case errors.Is(err, scoring.ErrNoValidAnswers):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Tidak ada jawaban yang valid")
	case errors.Is(err, scoring.ErrClassificationNotFound):
		return helper.JsonError(c, fiber.StatusInternalServerError, "Klasifikasi tidak ditemukan")
	default:
		log.Printf("[ERROR] ❌ test: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
}

/* =========================================================
   USER
========================================================= */

// GET /api/u/test-access
func (ctrl *TestController) Access(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	a, err := ctrl.Svc.Access(c.UserContext(), userID)
	if err != nil {
		return testError(c, err)
	}
	return helper.JsonOK(c, a.Message, a)
}

// POST /api/u/tests/submit
func (ctrl *TestController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req SubmitTestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Tier = strings.ToLower(strings.TrimSpace(req.Tier))
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	attempt, err := ctrl.Svc.Submit(c.UserContext(), service.SubmitInput{
		UserID:  userID,
		Tier:    req.Tier,
		Answers: req.Answers,
	})
	if err != nil {
		return testError(c, err)
	}
	return helper.JsonCreated(c, "Tes berhasil disubmit", attempt)
}

// GET /api/u/tests/results?tier=&page=&per_page=
func (ctrl *TestController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 10, 50)

	q := ctrl.Svc.DB.WithContext(c.UserContext()).
		Model(&model.TestAttemptModel{}).
		Where("test_attempt_user_id = ?", userID)
	if tier := c.Query("tier"); tier != "" {
		q = q.Where("test_attempt_tier = ?", tier)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung hasil tes")
	}
	var rows []model.TestAttemptModel
	if err := q.Order("test_attempt_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil hasil tes")
	}
	return helper.JsonList(c, "Riwayat hasil tes", rows, p.Build(total))
}

// GET /api/u/tests/results/latest?tier=
func (ctrl *TestController) Latest(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctrl.Svc.Latest(c.UserContext(), userID, c.Query("tier"))
	if err != nil {
		return testError(c, err)
	}
	return helper.JsonOK(c, "Hasil tes terakhir", m)
}

// GET /api/u/tests/results/:id
func (ctrl *TestController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID hasil tes tidak valid")
	}
	m, err := ctrl.Svc.Get(c.UserContext(), userID, id)
	if err != nil {
		return testError(c, err)
	}
	return helper.JsonOK(c, "Detail hasil tes", m)
}

/* =========================================================
   PUBLIC
========================================================= */

// GET /api/public/tests/templates/:label
func (ctrl *TestController) Template(c *fiber.Ctx) error {
	t, ok := ctrl.Templates.Template(c.Params("label"))
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Template tidak ditemukan")
	}
	return helper.JsonOK(c, "Template hasil", t)
}

// GET /api/public/tests/stats
func (ctrl *TestController) Stats(c *fiber.Ctx) error {
	st, err := ctrl.Svc.Stats(c.UserContext())
	if err != nil {
		return testError(c, err)
	}
	return helper.JsonOK(c, "Statistik tes", st)
}

/* =========================================================
   ADMIN
========================================================= */

type AnswerDetail struct {
	QuestionID    string `json:"question_id"`
	QuestionText  string `json:"question_text"`
	Category      string `json:"category"`
	SelectedValue string `json:"selected_value"`
	SelectedLabel string `json:"selected_label"`
}

// GET /api/a/users/:id/answers?tier=free|paid
func (ctrl *TestController) UserAnswers(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID user tidak valid")
	}
	tier := c.Query("tier", service.TierFree)

	m, err := ctrl.Svc.Latest(c.UserContext(), userID, tier)
	if err != nil {
		return testError(c, err)
	}

	rows, err := qrepo.ListAll(ctrl.Svc.DB.WithContext(c.UserContext()), tier)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}
	byID := make(map[string]scoring.Question, len(rows))
	for _, r := range rows {
		byID[r.QuestionID.String()] = r.ToScoring()
	}

	details := make([]AnswerDetail, 0, len(m.TestAttemptAnswers))
	for _, a := range m.TestAttemptAnswers {
		d := AnswerDetail{QuestionID: a.QuestionID, SelectedValue: a.SelectedValue}
		if q, ok := byID[a.QuestionID]; ok {
			d.QuestionText = q.Text
			d.Category = q.Category
			for _, o := range q.Options {
				if o.Value == a.SelectedValue {
					d.SelectedLabel = o.Label
					break
				}
			}
		}
		details = append(details, d)
	}

	return helper.JsonOK(c, "Jawaban tes user", fiber.Map{
		"attempt": m,
		"answers": details,
	})
}
