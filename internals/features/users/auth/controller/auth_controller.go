package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/users/auth/dto"
	authRepo "newmeclass_backend/internals/features/users/auth/repository"
	"newmeclass_backend/internals/features/users/auth/service"
	helper "newmeclass_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// mapping sentinel service → status HTTP
func authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrWrongPassword):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAccountInactive), errors.Is(err, service.ErrAccountBanned):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	default:
		log.Printf("[ERROR] ❌ auth: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
}

func (ac *AuthController) respondWithToken(c *fiber.Ctx, status int, msg string, resp dto.UserResponse, token string, exp time.Time) error {
	data := dto.AuthResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: exp, User: resp}
	if status == fiber.StatusCreated {
		return helper.JsonCreated(c, msg, data)
	}
	return helper.JsonOK(c, msg, data)
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := service.Register(ac.DB, req, c.IP())
	if err != nil {
		return authError(c, err)
	}
	token, exp, err := service.IssueToken(user, time.Now().UTC())
	if err != nil {
		return authError(c, err)
	}
	return ac.respondWithToken(c, fiber.StatusCreated, "Pendaftaran berhasil!", dto.FromUserModel(user), token, exp)
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := service.Login(ac.DB, req, c.IP())
	if err != nil {
		return authError(c, err)
	}
	token, exp, err := service.IssueToken(user, time.Now().UTC())
	if err != nil {
		return authError(c, err)
	}
	return ac.respondWithToken(c, fiber.StatusOK, "Login berhasil", dto.FromUserModel(user), token, exp)
}

// POST /api/auth/logout (butuh token)
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}
	if err := service.Logout(c.UserContext(), ac.DB, raw, userID); err != nil {
		return authError(c, err)
	}
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/u/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := authRepo.FindUserByID(ac.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authError(c, service.ErrUserNotFound)
		}
		return authError(c, err)
	}
	return helper.JsonOK(c, "Profil user", dto.FromUserModel(user))
}

// PUT /api/u/profile
func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := service.UpdateProfile(ac.DB, userID, req)
	if err != nil {
		return authError(c, err)
	}
	return helper.JsonUpdated(c, "Profil berhasil diupdate", dto.FromUserModel(user))
}

// PUT /api/u/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := service.ChangePassword(ac.DB, userID, req); err != nil {
		return authError(c, err)
	}
	return helper.JsonUpdated(c, "Password berhasil diubah", nil)
}

// GET /api/u/referral-link
func (ac *AuthController) ReferralLink(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := authRepo.FindUserByID(ac.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authError(c, service.ErrUserNotFound)
		}
		return authError(c, err)
	}
	code, err := service.EnsureReferralCode(ac.DB, user)
	if err != nil {
		return authError(c, err)
	}
	return helper.JsonOK(c, "Link referral", dto.ReferralLinkResponse{
		ReferralCode:    code,
		ReferralLink:    service.ReferralLink(code),
		ReferralCount:   user.ReferralCount,
		ReferralBalance: user.ReferralBalance,
	})
}
