package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwchoi684/rg-manager/database"
	"github.com/jwchoi684/rg-manager/models"
	"github.com/jwchoi684/rg-manager/notify"
	"github.com/jwchoi684/rg-manager/store"
)

type AuthHandler struct {
	JWTSecret string
	Kakao     *notify.KakaoClient
}

func NewAuthHandler(secret string, kakao *notify.KakaoClient) *AuthHandler {
	return &AuthHandler{JWTSecret: secret, Kakao: kakao}
}

const tokenTTL = 7 * 24 * time.Hour

func (h *AuthHandler) signJWT(u *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"role":     u.Role,
		"username": u.Username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

func (h *AuthHandler) loginResponse(c echo.Context, u *models.User) error {
	token, err := h.signJWT(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token, "user": u})
}

type signupReq struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// POST /auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "INTERNAL"})
	}
	u := models.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		Role:         models.RoleUser,
	}
	if err := store.CreateUser(database.DB, &u); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, u.Username, "signup", "", "")
	return c.JSON(http.StatusCreated, map[string]any{"id": u.ID, "username": u.Username})
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	u, err := store.GetUserByUsername(database.DB, strings.TrimSpace(req.Username))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	store.AppendLog(database.DB, u.Username, "login", "", "")
	return h.loginResponse(c, u)
}

type kakaoLoginReq struct {
	AccessToken string `json:"access_token" validate:"required"`
}

// POST /auth/kakao — OAuth login. The access token comes from the client's
// Kakao SDK flow; we only verify it against the Kakao user API and find or
// create the matching account.
func (h *AuthHandler) KakaoLogin(c echo.Context) error {
	var req kakaoLoginReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ku, err := h.Kakao.Me(c.Request().Context(), req.AccessToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "KAKAO_AUTH_FAILED"})
	}
	kakaoID := strconv.FormatInt(ku.ID, 10)

	u, err := store.GetUserByKakaoID(database.DB, kakaoID)
	if err != nil {
		// first login: provision a user account keyed by the Kakao id
		u = &models.User{
			Username:     "kakao_" + kakaoID,
			PasswordHash: "-", // no password login for OAuth accounts
			Role:         models.RoleUser,
			Email:        ku.KakaoAccount.Email,
			KakaoID:      kakaoID,
		}
		if err := store.CreateUser(database.DB, u); err != nil {
			return storeErr(c, err)
		}
		store.AppendLog(database.DB, u.Username, "signup", "", "kakao oauth")
	}
	store.AppendLog(database.DB, u.Username, "login", "", "kakao oauth")
	return h.loginResponse(c, u)
}

// GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	a := actorFrom(c)
	u, err := store.GetUserByID(database.DB, a.UserID)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

type consentReq struct {
	KakaoConsent bool `json:"kakao_message_consent"`
}

// PUT /auth/me/consent — toggle KakaoTalk notification consent.
func (h *AuthHandler) UpdateConsent(c echo.Context) error {
	a := actorFrom(c)
	var req consentReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	err := database.DB.Model(&models.User{}).
		Where("id = ?", a.UserID).
		Update("kakao_consent", req.KakaoConsent).Error
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"kakao_message_consent": req.KakaoConsent})
}
