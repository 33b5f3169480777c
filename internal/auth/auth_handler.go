package auth

import (
	"net/http"
	"time"

	autherrors "github.com/hxben0103/ojt-ai-system/internal/auth/errors"
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/shared/request"
	"github.com/hxben0103/ojt-ai-system/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type CookieOptions struct {
	Secure bool
	TTL    TokenTTL
}

type Handler struct {
	service Service
	cookies CookieOptions
}

func NewHandler(s Service, cookies CookieOptions) *Handler {
	return &Handler{service: s, cookies: cookies}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	tokens, userResp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if request.IsWebClient(c) {
		h.setTokenCookies(c, tokens)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, autherrors.ErrInvalidToken)
		return
	}

	userResp, err := h.service.GetMe(c.Request.Context(), actor.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userResp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, accessCookie, "", -1)
	h.setCookie(c, refreshCookie, "", -1)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if res.AccessToken != "" && request.IsWebClient(c) {
		h.setTokenCookies(c, res.TokenPair)
	}
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	isWeb := request.IsWebClient(c)

	var refreshToken string
	if isWeb {
		var err error
		refreshToken, err = c.Cookie(refreshCookie)
		if err != nil || refreshToken == "" {
			response.FromError(c, autherrors.ErrMissingRefreshToken)
			return
		}
	} else {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Refresh token is required", nil)
			return
		}
		refreshToken = req.RefreshToken
	}

	tokens, userResp, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if isWeb {
		h.setTokenCookies(c, tokens)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}, nil)
}

func (h *Handler) setTokenCookies(c *gin.Context, tokens TokenPair) {
	h.setCookie(c, accessCookie, tokens.AccessToken, maxAge(h.cookies.TTL.Access))
	h.setCookie(c, refreshCookie, tokens.RefreshToken, maxAge(h.cookies.TTL.Refresh))
}

func (h *Handler) setCookie(c *gin.Context, name, value string, age int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   age,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func maxAge(d time.Duration) int {
	return int(d / time.Second)
}
