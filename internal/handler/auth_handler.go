package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Register godoc
// @Summary Register an account
// @Description Create an account and issue account plus session tokens
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.RegisterRequest true "Registration payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /user/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request payload"))
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate by email and password, issuing both token classes
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /user/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

// GetProfile godoc
// @Summary Get current user profile
// @Description Returns the authenticated account with its school name
// @Tags Authentication
// @Produce json
// @Param token header string true "Session token"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /user/getProfile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := sessionClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, profile)
}

// CreateSchoolAdmin godoc
// @Summary Create school administrator
// @Description Provision a school_admin account bound to a school, superadmin only
// @Tags Authentication
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param payload body service.CreateSchoolAdminRequest true "School admin payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /user/createSchoolAdmin [post]
func (h *AuthHandler) CreateSchoolAdmin(c *gin.Context) {
	var req service.CreateSchoolAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request payload"))
		return
	}

	user, err := h.service.CreateSchoolAdmin(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}

// CreateSessionToken godoc
// @Summary Exchange account token for a session token
// @Description Mints a session token scoped to the caller's device
// @Tags Authentication
// @Produce json
// @Param token header string true "Account token"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /user/createSessionToken [post]
func (h *AuthHandler) CreateSessionToken(c *gin.Context) {
	claims, ok := middleware.AccountClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	token, err := h.service.CreateSessionToken(c.Request.Context(), claims, c.GetHeader("User-Agent"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"sessionToken": token})
}
