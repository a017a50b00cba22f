package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/certificates/user_certificates/model"
	paymentModel "newmeclass_backend/internals/features/payments/model"
	resultModel "newmeclass_backend/internals/features/tests/results/model"
	userModel "newmeclass_backend/internals/features/users/user/model"
	helper "newmeclass_backend/internals/helpers"
	"newmeclass_backend/internals/helpers/dbtime"
)

var (
	ErrUserNotFound        = errors.New("user tidak ditemukan")
	ErrCertificateNotFound = errors.New("sertifikat tidak ditemukan")
	ErrNotEligible         = errors.New("Sertifikat hanya tersedia untuk pengguna yang telah membayar test. Silakan upgrade ke Test Premium.")
	ErrNoAnalysis          = errors.New("Belum ada hasil analisis. Silakan selesaikan test terlebih dahulu.")
	ErrInvalidAssetType    = errors.New("tipe aset harus background, logo, atau signature")
)

// NewCertificateNumber: NEWME-YYYYMMDD-<HEX8>
func NewCertificateNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("NEWME-%s-%s", dbtime.ToLocal(now).Format("20060102"), strings.ToUpper(suffix))
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

/* =========================================================
   TEMPLATE
========================================================= */

func GetTemplate(db *gorm.DB) (model.CertificateTemplateModel, error) {
	var t model.CertificateTemplateModel
	err := db.Where("id = ?", model.CertificateTemplateID).
		Attrs(model.DefaultCertificateTemplate()).
		FirstOrCreate(&t).Error
	return t, err
}

func SaveTemplate(db *gorm.DB, updates map[string]any, by *uuid.UUID) (model.CertificateTemplateModel, error) {
	if _, err := GetTemplate(db); err != nil {
		return model.CertificateTemplateModel{}, err
	}
	if len(updates) > 0 {
		if by != nil {
			updates["updated_by"] = *by
		}
		if err := db.Model(&model.CertificateTemplateModel{}).
			Where("id = ?", model.CertificateTemplateID).
			Updates(updates).Error; err != nil {
			return model.CertificateTemplateModel{}, err
		}
	}
	return GetTemplate(db)
}

// SetAsset menyimpan URL aset baru dan mengembalikan URL lama (untuk dihapus dari disk).
func SetAsset(db *gorm.DB, assetType, url string, by *uuid.UUID) (old string, err error) {
	col := model.AssetColumn(assetType)
	if col == "" {
		return "", ErrInvalidAssetType
	}
	t, err := GetTemplate(db)
	if err != nil {
		return "", err
	}
	switch assetType {
	case model.AssetBackground:
		old = t.BackgroundURL
	case model.AssetLogo:
		old = t.LogoURL
	case model.AssetSignature:
		old = t.SignatureURL
	}
	if _, err := SaveTemplate(db, map[string]any{col: url}, by); err != nil {
		return "", err
	}
	return old, nil
}

/* =========================================================
   ISSUE & VERIFY
========================================================= */

type IssueInput struct {
	UserID         uuid.UUID
	CourseName     string
	CompletionDate string
	IssuedBy       *uuid.UUID
}

// Issue menerbitkan sertifikat; hasil tes terakhir (kalau ada) ikut ditautkan.
func Issue(ctx context.Context, db *gorm.DB, in IssueInput) (*model.UserCertificateModel, error) {
	db = db.WithContext(ctx)
	u, err := loadUser(db, in.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cert := model.UserCertificateModel{
		UserCertUserID:         u.ID,
		UserCertRecipientName:  u.FullName,
		UserCertRecipientEmail: u.Email,
		UserCertCourseName:     strings.TrimSpace(in.CourseName),
		UserCertCompletionDate: strings.TrimSpace(in.CompletionDate),
		UserCertIssuedBy:       in.IssuedBy,
		UserCertIssuedAt:       now,
	}
	if cert.UserCertCourseName == "" {
		cert.UserCertCourseName = model.DefaultCourseName
	}
	if cert.UserCertCompletionDate == "" {
		cert.UserCertCompletionDate = dbtime.ToLocal(now).Format("2006-01-02")
	}

	var attempt resultModel.TestAttemptModel
	err = db.Where("test_attempt_user_id = ?", u.ID).
		Order("test_attempt_created_at DESC").
		First(&attempt).Error
	switch {
	case err == nil:
		id := attempt.TestAttemptID
		cert.UserCertAttemptID = &id
		cert.UserCertDominantLabel = attempt.TestAttemptDominantLabel
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	// nomor bentrok sangat jarang, cukup coba ulang beberapa kali
	for i := 0; i < 3; i++ {
		cert.UserCertID = uuid.Nil
		cert.UserCertNumber = NewCertificateNumber(now)
		err = db.Create(&cert).Error
		if err == nil {
			log.Printf("[INFO] ✅ Sertifikat %s diterbitkan untuk user=%s", cert.UserCertNumber, u.ID)
			return &cert, nil
		}
		if !helper.IsUniqueViolation(err) {
			return nil, err
		}
	}
	return nil, err
}

func Verify(ctx context.Context, db *gorm.DB, number string) (*model.UserCertificateModel, error) {
	var cert model.UserCertificateModel
	err := db.WithContext(ctx).
		Where("user_cert_number = ?", strings.TrimSpace(number)).
		First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	return &cert, nil
}

/* =========================================================
   ELIGIBILITY (sertifikat hasil analisis)
========================================================= */

type Eligibility struct {
	HasPaid                bool   `json:"has_paid"`
	HasAnalysis            bool   `json:"has_analysis"`
	HasUsedFreeTest        bool   `json:"has_used_free_test"`
	CanDownloadCertificate bool   `json:"can_download_certificate"`
	Message                string `json:"message"`
}

func CheckEligibility(ctx context.Context, db *gorm.DB, userID uuid.UUID) (Eligibility, error) {
	db = db.WithContext(ctx)
	u, err := loadUser(db, userID)
	if err != nil {
		return Eligibility{}, err
	}

	var out Eligibility
	out.HasPaid = u.PaymentStatus == userModel.PaymentStatusApproved ||
		u.PaidTestStatus == userModel.TestStatusCompleted
	if !out.HasPaid {
		var n int64
		if err := db.Model(&paymentModel.PaymentModel{}).
			Where("payment_user_id = ? AND payment_status = ?", userID, paymentModel.StatusSettlement).
			Count(&n).Error; err != nil {
			return Eligibility{}, err
		}
		out.HasPaid = n > 0
	}

	var paid, free int64
	if err := db.Model(&resultModel.TestAttemptModel{}).
		Where("test_attempt_user_id = ? AND test_attempt_tier = ?", userID, "paid").
		Count(&paid).Error; err != nil {
		return Eligibility{}, err
	}
	if err := db.Model(&resultModel.TestAttemptModel{}).
		Where("test_attempt_user_id = ? AND test_attempt_tier = ?", userID, "free").
		Count(&free).Error; err != nil {
		return Eligibility{}, err
	}
	out.HasAnalysis = paid > 0
	out.HasUsedFreeTest = free > 0
	out.CanDownloadCertificate = out.HasPaid && out.HasAnalysis

	if out.CanDownloadCertificate {
		out.Message = "Eligible to download certificate"
	} else {
		out.Message = "Upgrade ke Test Premium untuk download sertifikat"
	}
	return out, nil
}

// ResultForPDF: user + hasil tes premium terakhir, hanya kalau eligible.
func ResultForPDF(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, *resultModel.TestAttemptModel, error) {
	el, err := CheckEligibility(ctx, db, userID)
	if err != nil {
		return nil, nil, err
	}
	if !el.HasPaid {
		return nil, nil, ErrNotEligible
	}
	if !el.HasAnalysis {
		return nil, nil, ErrNoAnalysis
	}

	db = db.WithContext(ctx)
	u, err := loadUser(db, userID)
	if err != nil {
		return nil, nil, err
	}
	var attempt resultModel.TestAttemptModel
	if err := db.Where("test_attempt_user_id = ? AND test_attempt_tier = ?", userID, "paid").
		Order("test_attempt_created_at DESC").
		First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNoAnalysis
		}
		return nil, nil, err
	}
	return u, &attempt, nil
}
