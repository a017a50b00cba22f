package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"newmeclass_backend/internals/configs"
	referralService "newmeclass_backend/internals/features/referrals/service"
	"newmeclass_backend/internals/features/users/auth/dto"
	authHelper "newmeclass_backend/internals/features/users/auth/helper"
	authRepo "newmeclass_backend/internals/features/users/auth/repository"
	userModel "newmeclass_backend/internals/features/users/user/model"
	helpersAuth "newmeclass_backend/internals/helpers/auth"
)

var (
	ErrEmailTaken         = errors.New("Email sudah terdaftar")
	ErrInvalidCredentials = errors.New("Email atau password salah")
	ErrAccountInactive    = errors.New("Akun Anda dinonaktifkan")
	ErrAccountBanned      = errors.New("Akun Anda telah diblokir")
	ErrWrongPassword      = errors.New("Password lama salah")
	ErrMissingSecret      = errors.New("JWT_SECRET belum diset")
	ErrUserNotFound       = errors.New("User tidak ditemukan")
)

const accessTTLDefault = 7 * 24 * time.Hour

func accessTTL() time.Duration {
	if configs.JWTExpiresIn > 0 {
		return configs.JWTExpiresIn
	}
	return accessTTLDefault
}

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, req dto.RegisterRequest, ip string) (*userModel.UserModel, error) {
	req.Normalize()

	exists, err := authRepo.EmailExists(db, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := req.ToModel(hash)
	user.IPAddress = ip

	code, err := uniqueReferralCode(db, user.FullName)
	if err != nil {
		return nil, err
	}
	user.ReferralCode = code

	err = db.Transaction(func(tx *gorm.DB) error {
		var referrer *userModel.UserModel
		if req.ReferralCode != "" {
			r, err := referralService.FindReferrerByCode(tx, req.ReferralCode)
			switch {
			case errors.Is(err, referralService.ErrReferralCodeNotFound):
				log.Printf("[WARN] ⚠️ Kode referral %q tidak dikenal, diabaikan", req.ReferralCode)
			case err != nil:
				return err
			default:
				referrer = r
				user.ReferredBy = &r.ID
				user.UsedReferral = r.ReferralCode
				user.ReferralSource = "referral"
			}
		}

		if err := authRepo.CreateUser(tx, user); err != nil {
			return err
		}
		if referrer != nil {
			if _, err := referralService.RecordReferral(tx, referrer, user); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] ✅ User baru terdaftar: %s (%s)", user.Email, user.ID)
	return user, nil
}

// uniqueReferralCode: retry kalau (jarang) bentrok dengan kode yang sudah ada.
func uniqueReferralCode(db *gorm.DB, name string) (string, error) {
	for i := 0; i < 5; i++ {
		code := authHelper.GenerateReferralCode(name)
		taken, err := authRepo.ReferralCodeExists(db, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("gagal membuat kode referral unik")
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, req dto.LoginRequest, ip string) (*userModel.UserModel, error) {
	email := authHelper.NormalizeEmail(req.Email)
	user, err := authRepo.FindUserByEmail(db, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !authHelper.CheckPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, ErrAccountBanned
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	if err := authRepo.TouchLastLogin(db, user.ID, ip); err != nil {
		log.Printf("[WARN] gagal update last_login_at: %v", err)
	}
	return user, nil
}

/* ==========================
   TOKEN
========================== */

// IssueToken: HS256, klaim id/role/user_name dibaca AuthMiddleware.
func IssueToken(user *userModel.UserModel, now time.Time) (string, time.Time, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", time.Time{}, ErrMissingSecret
	}
	exp := now.Add(accessTTL())
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"email":     user.Email,
		"role":      user.Role,
		"user_name": user.FullName,
		"user_type": user.UserType,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Logout: masukkan token ke blacklist sampai exp-nya lewat.
func Logout(ctx context.Context, db *gorm.DB, rawToken string, userID uuid.UUID) error {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return ErrMissingSecret
	}

	expiresAt := time.Now().UTC().Add(accessTTL())
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(rawToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiresAt = time.Unix(int64(exp), 0).UTC()
		}
	}
	return helpersAuth.Add(ctx, db, rawToken, secret, userID, expiresAt)
}

/* ==========================
   PROFILE
========================== */

func ChangePassword(db *gorm.DB, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	user, err := authRepo.FindUserByID(db, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if !authHelper.CheckPassword(user.Password, req.CurrentPassword) {
		return ErrWrongPassword
	}
	hash, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return authRepo.UpdateUserPassword(db, userID, hash)
}

func UpdateProfile(db *gorm.DB, userID uuid.UUID, req dto.UpdateProfileRequest) (*userModel.UserModel, error) {
	if updates := req.ToUpdates(); len(updates) > 0 {
		if err := authRepo.UpdateUserColumns(db, userID, updates); err != nil {
			return nil, err
		}
	}
	user, err := authRepo.FindUserByID(db, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// EnsureReferralCode: akun lama yang belum punya kode dibuatkan sekali.
func EnsureReferralCode(db *gorm.DB, user *userModel.UserModel) (string, error) {
	if user.ReferralCode != "" {
		return user.ReferralCode, nil
	}
	code, err := uniqueReferralCode(db, user.FullName)
	if err != nil {
		return "", err
	}
	if err := authRepo.UpdateUserColumns(db, user.ID, map[string]any{"referral_code": code}); err != nil {
		return "", err
	}
	user.ReferralCode = code
	return code, nil
}

func ReferralLink(code string) string {
	return configs.FrontendURL + "/register?ref=" + code
}
