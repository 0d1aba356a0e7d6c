package service

import (
	"context"
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/policy"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindProfile(ctx context.Context, id string) (*models.UserProfile, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

type authSchoolRepository interface {
	FindByID(ctx context.Context, id string) (*models.School, error)
}

// RegisterRequest holds payload for account registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"`
}

// LoginRequest holds credentials for authenticating an account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateSchoolAdminRequest holds payload for provisioning a school admin.
type CreateSchoolAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	SchoolID string `json:"schoolId"`
}

// AuthResult bundles an account with its freshly issued tokens.
type AuthResult struct {
	User         *models.User `json:"user"`
	AccountToken string       `json:"accountToken"`
	SessionToken string       `json:"sessionToken"`
}

// AuthService provides registration, login, admin provisioning and session
// token exchange.
type AuthService struct {
	users     authUserRepository
	schools   authSchoolRepository
	tokens    *TokenService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, schools authSchoolRepository, tokens *TokenService, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, schools: schools, tokens: tokens, validator: validate, logger: logger}
}

// Register creates an account, defaulting the role to school_admin, and
// issues both token classes.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}

	role := models.UserRole(req.Role)
	if req.Role == "" {
		role = models.RoleSchoolAdmin
	} else if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid role. Must be superadmin or school_admin")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, strings.ToLower(req.Email))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check user uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "User with this username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("account registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return s.issueTokens(user, "web")
}

// Login verifies credentials and issues both token classes. Unknown email and
// wrong password produce the same message so neither case leaks.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid credentials")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid credentials")
	}

	return s.issueTokens(user, "web")
}

// GetProfile returns the account behind the session, with its school name.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.users.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "User not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return profile, nil
}

// CreateSchoolAdmin provisions a school_admin account bound to an existing
// active school. Superadmin only; the role is forced regardless of payload.
func (s *AuthService) CreateSchoolAdmin(ctx context.Context, actor policy.Actor, req CreateSchoolAdminRequest) (*models.User, error) {
	if !actor.IsSuperadmin() {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Only superadmins can create school administrators")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}

	if req.SchoolID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "School ID is required for school admin")
	}

	if _, err := s.schools.FindByID(ctx, req.SchoolID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "School not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, strings.ToLower(req.Email))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check user uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "User with this username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	schoolID := req.SchoolID
	user := &models.User{
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Role:         models.RoleSchoolAdmin,
		SchoolID:     &schoolID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("school admin created", zap.String("user_id", user.ID), zap.String("school_id", schoolID))

	return user, nil
}

// CreateSessionToken exchanges verified account claims plus a device
// fingerprint for a fresh session token. The account must still resolve to an
// active user; role and tenant are read from the current row, not the token.
func (s *AuthService) CreateSessionToken(ctx context.Context, claims *models.AccountClaims, device string) (string, error) {
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "User not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	return s.mintSessionToken(user, deviceFingerprint(device))
}

func (s *AuthService) issueTokens(user *models.User, deviceID string) (*AuthResult, error) {
	accountToken, err := s.tokens.IssueAccountToken(user.ID, user.Username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue account token")
	}

	sessionToken, err := s.mintSessionToken(user, deviceID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccountToken: accountToken, SessionToken: sessionToken}, nil
}

func (s *AuthService) mintSessionToken(user *models.User, deviceID string) (string, error) {
	schoolID := ""
	if user.SchoolID != nil {
		schoolID = *user.SchoolID
	}

	sessionToken, err := s.tokens.IssueSessionToken(SessionTokenParams{
		UserID:    user.ID,
		UserKey:   user.Username,
		Role:      user.Role,
		SchoolID:  schoolID,
		SessionID: uuid.NewString(),
		DeviceID:  deviceID,
	})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue session token")
	}
	return sessionToken, nil
}

func deviceFingerprint(device string) string {
	if device == "" {
		device = "unknown"
	}
	sum := md5.Sum([]byte(device))
	return hex.EncodeToString(sum[:])
}
