package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/tokenstore"
	"github.com/cypher125/siwes/internal/upstream"
	"github.com/cypher125/siwes/pkg/logger"
	"github.com/cypher125/siwes/pkg/validator"
)

// User-facing failure messages for the login variants.
const (
	msgLoginFailed        = "Login failed"
	msgInvalidStaffID     = "Invalid staff ID. Please check and try again."
	msgStaffLoginFailed   = "Invalid staff ID or password."
	msgStudentNotFound    = "Student not found with provided surname and password."
	msgStudentLoginFailed = "Failed to login student."
	msgRegisterFailed     = "Registration failed"
	msgRegisterOK         = "Registration successful"
)

// AuthService orchestrates the login variants, registration and logout
// against the upstream API, persisting credentials and the identity
// snapshot through the session it is handed.
type AuthService struct {
	client   *upstream.Client
	validate *validator.Validator
	log      logger.Logger
}

func NewAuthService(client *upstream.Client, validate *validator.Validator, log logger.Logger) *AuthService {
	return &AuthService{
		client:   client,
		validate: validate,
		log:      log,
	}
}

// Login performs the credential login. On success the token pair and
// identity snapshot are persisted and the server-declared role is
// returned unchanged.
func (s *AuthService) Login(ctx context.Context, sess *upstream.Session, req domain.LoginRequest) domain.LoginResult {
	if err := s.validate.Validate(req); err != nil {
		return domain.LoginResult{Success: false, Message: err.Error()}
	}

	var tr domain.TokenResponse
	if err := sess.Post(ctx, "/token/", req, &tr); err != nil {
		s.log.Info("credential login rejected", "error", classify(err))
		return domain.LoginResult{Success: false, Message: failureMessage(err, msgLoginFailed)}
	}

	if err := s.persistSession(ctx, sess, &tr); err != nil {
		return domain.LoginResult{Success: false, Message: msgLoginFailed}
	}
	return domain.LoginResult{Success: true, Role: tr.User.Role}
}

// LoginWithStaffID resolves a supervisor's staff ID to an email, then
// performs the credential login with the resolved email. An
// unresolvable staff ID never reaches the credential step.
func (s *AuthService) LoginWithStaffID(ctx context.Context, sess *upstream.Session, req domain.StaffLoginRequest) domain.LoginResult {
	if err := s.validate.Validate(req); err != nil {
		return domain.LoginResult{Success: false, Message: err.Error()}
	}

	var lookup domain.LookupResponse
	err := sess.Get(ctx, "/supervisors/lookup/?staff_id="+url.QueryEscape(req.StaffID), &lookup)
	if err != nil || lookup.Email == "" {
		if err == nil {
			err = domain.ErrLookupNotFound
		}
		s.log.Info("staff ID lookup failed", "staff_id", req.StaffID, "error", classify(err))
		return domain.LoginResult{Success: false, Message: msgInvalidStaffID}
	}

	var tr domain.TokenResponse
	creds := domain.LoginRequest{Email: lookup.Email, Password: req.Password}
	if err := sess.Post(ctx, "/token/", creds, &tr); err != nil {
		return domain.LoginResult{Success: false, Message: failureMessage(err, msgStaffLoginFailed)}
	}

	// This path is exclusively for supervisors; normalize an omitted role.
	tr.User.Role = tr.User.Role.OrDefault(domain.RoleSupervisor)

	if err := s.persistSession(ctx, sess, &tr); err != nil {
		return domain.LoginResult{Success: false, Message: msgStaffLoginFailed}
	}
	return domain.LoginResult{Success: true, Role: tr.User.Role}
}

// LoginWithSurname resolves a student's surname and matric-style
// password to an email, then performs the password-less student token
// exchange keyed on email alone.
func (s *AuthService) LoginWithSurname(ctx context.Context, sess *upstream.Session, req domain.SurnameLoginRequest) domain.LoginResult {
	if err := s.validate.Validate(req); err != nil {
		return domain.LoginResult{Success: false, Message: err.Error()}
	}

	path := fmt.Sprintf("/students/lookup/?surname=%s&password=%s",
		url.QueryEscape(req.Surname), url.QueryEscape(req.Password))

	var lookup domain.LookupResponse
	err := sess.Get(ctx, path, &lookup)
	if err != nil || lookup.Email == "" {
		if err == nil {
			err = domain.ErrLookupNotFound
		}
		s.log.Info("student surname lookup failed", "surname", req.Surname, "error", classify(err))
		return domain.LoginResult{Success: false, Message: msgStudentNotFound}
	}

	var tr domain.TokenResponse
	body := map[string]string{"email": lookup.Email}
	if err := sess.Post(ctx, "/token/student/", body, &tr); err != nil {
		return domain.LoginResult{Success: false, Message: failureMessage(err, msgStudentLoginFailed)}
	}

	// This path is exclusively for students; normalize an omitted role.
	tr.User.Role = tr.User.Role.OrDefault(domain.RoleStudent)

	if err := s.persistSession(ctx, sess, &tr); err != nil {
		return domain.LoginResult{Success: false, Message: msgStudentLoginFailed}
	}
	return domain.LoginResult{Success: true, Role: tr.User.Role}
}

// Register dispatches to the role-specific registration endpoint. It
// never authenticates the new account.
func (s *AuthService) Register(ctx context.Context, sess *upstream.Session, req domain.RegisterRequest) domain.RegisterResult {
	if err := s.validate.Validate(req); err != nil {
		return domain.RegisterResult{Success: false, Message: err.Error()}
	}

	var path string
	var payload interface{}
	switch req.Role {
	case domain.RoleAdmin:
		path = "/admin/register/"
		payload = adminRegistration{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			AdminCode: req.AdminCode,
		}
	case domain.RoleStudent:
		path = "/students/register/"
		payload = studentRegistration{
			Email:        req.Email,
			Password:     req.Password,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			MatricNumber: req.MatricNo,
			Department:   req.Department,
			Level:        req.Level,
			PhoneNumber:  req.PhoneNumber,
		}
	case domain.RoleSupervisor:
		path = "/supervisors/register/"
		payload = supervisorRegistration{
			Email:       req.Email,
			Password:    req.Password,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Department:  req.Department,
			Title:       req.Title,
			PhoneNumber: req.PhoneNumber,
		}
	default:
		return domain.RegisterResult{Success: false, Message: "Invalid role specified"}
	}

	if err := sess.Post(ctx, path, payload, nil); err != nil {
		if IsConflict(err) {
			s.log.Info("registration conflict", "role", req.Role, "email", req.Email)
		}
		return domain.RegisterResult{Success: false, Message: failureMessage(err, msgRegisterFailed)}
	}

	return domain.RegisterResult{Success: true, Message: msgRegisterOK}
}

// Logout invalidates the session server-side on a best-effort basis and
// then clears the token store and session cache unconditionally. Local
// clearing happens even when the server call fails.
func (s *AuthService) Logout(ctx context.Context, sess *upstream.Session) {
	if sess.Tokens().Get(tokenstore.AccessToken) != "" {
		if err := sess.Post(ctx, "/logout/", struct{}{}, nil); err != nil {
			s.log.Warn("server-side logout failed", "error", err)
		}
	}

	sess.Tokens().Remove(tokenstore.AccessToken)
	sess.Tokens().Remove(tokenstore.RefreshToken)
	sess.Tokens().Remove(tokenstore.SessionID)
	if err := sess.Cache().Remove(ctx); err != nil {
		s.log.Warn("failed to clear session cache on logout", "error", err)
	}
}

// persistSession stores the freshly minted token pair and identity
// snapshot. The access cookie lives one day, the refresh cookie seven,
// matching the upstream token lifetimes.
func (s *AuthService) persistSession(ctx context.Context, sess *upstream.Session, tr *domain.TokenResponse) error {
	sess.Tokens().Set(tokenstore.AccessToken, tr.Access, s.client.AccessTTLDays())
	sess.Tokens().Set(tokenstore.RefreshToken, tr.Refresh, s.client.RefreshTTLDays())

	if err := sess.Cache().Set(ctx, &tr.User); err != nil {
		// Tokens without an identity snapshot would leave the stores
		// diverged; roll the login back instead.
		sess.Tokens().Remove(tokenstore.AccessToken)
		sess.Tokens().Remove(tokenstore.RefreshToken)
		s.log.Error("failed to persist identity snapshot", "error", err)
		return err
	}
	return nil
}

// classify maps an upstream failure onto the domain error taxonomy,
// keeping the upstream's message in the chain.
func classify(err error) error {
	var apiErr *upstream.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, apiErr.Message)
	case apiErr.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrLookupNotFound, apiErr.Message)
	case apiErr.StatusCode == http.StatusConflict,
		apiErr.StatusCode == http.StatusBadRequest && looksDuplicate(apiErr.Message):
		return fmt.Errorf("%w: %s", domain.ErrRegistrationConflict, apiErr.Message)
	}
	return err
}

// looksDuplicate catches upstreams that report duplicate fields as a
// generic 400 instead of 409.
func looksDuplicate(message string) bool {
	msg := strings.ToLower(message)
	return strings.Contains(msg, "already") || strings.Contains(msg, "exists")
}

// IsConflict reports whether an upstream failure is a duplicate-field
// registration conflict.
func IsConflict(err error) bool {
	return errors.Is(classify(err), domain.ErrRegistrationConflict)
}

// failureMessage maps a transport error to the message shown to the
// user: the upstream's own text when it sent one, the variant's
// fallback otherwise.
func failureMessage(err error, fallback string) string {
	if errors.Is(err, domain.ErrSessionExpired) {
		return "Your session has expired. Please sign in again."
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Role-specific registration payloads, matching the upstream endpoints.

type adminRegistration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AdminCode string `json:"admin_code"`
}

type studentRegistration struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MatricNumber string `json:"matric_number"`
	Department   string `json:"department"`
	Level        string `json:"level"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

type supervisorRegistration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Department  string `json:"department"`
	Title       string `json:"title,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}
