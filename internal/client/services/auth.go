package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/BuiltByShivam/smart-inventory/internal/client/ledger"
	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/registry"
	"github.com/BuiltByShivam/smart-inventory/internal/client/session"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

// CustomQuestion is the SecurityQuestions entry that asks for a free-text
// question instead.
const CustomQuestion = "Custom question..."

// SecurityQuestions are offered at signup.
var SecurityQuestions = []string{
	"What is your mother's maiden name?",
	"What city were you born in?",
	"What is the name of your first pet?",
	"What was your first school's name?",
	CustomQuestion,
}

var ErrPasswordMismatch = errors.New("passwords do not match")

// SignupForm carries the signup fields as typed by the user.
type SignupForm struct {
	Username       string
	Password       string
	Confirm        string
	Question       string
	CustomQuestion string
	Answer         string
}

// AuthService defines authentication and password-recovery operations.
//
// Password recovery is two-step: ForgotPassword returns the account's
// security question, VerifyAnswer checks the answer and returns a simulated
// reset link. ResetPassword redeems the link's token.
type AuthService interface {
	Login(ctx context.Context, username, password string) (models.User, error)
	Logout(ctx context.Context) error
	ClearOfflineData(ctx context.Context) error
	Current() (*session.Claims, error)
	Signup(ctx context.Context, form SignupForm) (models.User, error)
	ForgotPassword(ctx context.Context, username string) (string, error)
	VerifyAnswer(ctx context.Context, username, answer string) (string, error)
	CheckResetToken(ctx context.Context, token string) (string, error)
	ResetPassword(ctx context.Context, token, password, confirm string) (string, error)
}

type authService struct {
	users    *registry.Registry
	tokens   *ledger.Ledger
	session  *session.Manager
	linkBase string
	log      logging.Logger
}

// NewAuthService constructs an AuthService. linkBase is the origin reset
// links point at.
func NewAuthService(users *registry.Registry, tokens *ledger.Ledger, sm *session.Manager, linkBase string, log logging.Logger) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		session:  sm,
		linkBase: strings.TrimRight(linkBase, "/"),
		log:      log.With("component", "auth"),
	}
}

func (a *authService) Login(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: enter username and password", common.ErrorValidation)
	}
	u, err := a.users.Authenticate(ctx, username, password)
	if err != nil {
		a.log.Warn(ctx, "login rejected", "username", username, "error", err)
		return models.User{}, err
	}
	if err := a.session.Start(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("start session: %w", err)
	}
	a.log.Info(ctx, "logged in", "username", u.Username, "role", u.Role)
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.End(ctx)
}

// ClearOfflineData signs the admin out and wipes local state: registered
// users, settings and reset tokens kept in the local store.
func (a *authService) ClearOfflineData(ctx context.Context) error {
	c, err := a.session.RequireAdmin()
	if err != nil {
		return err
	}
	if err := a.session.Wipe(ctx); err != nil {
		return fmt.Errorf("clear local state: %w", err)
	}
	a.log.Info(ctx, "local state cleared", "username", c.Username)
	return nil
}

func (a *authService) Current() (*session.Claims, error) {
	return a.session.Current()
}

func (a *authService) Signup(ctx context.Context, f SignupForm) (models.User, error) {
	if strings.TrimSpace(f.Username) == "" || f.Password == "" || f.Confirm == "" || strings.TrimSpace(f.Answer) == "" {
		return models.User{}, fmt.Errorf("%w: please fill all required fields", common.ErrorValidation)
	}
	if f.Password != f.Confirm {
		return models.User{}, ErrPasswordMismatch
	}

	q := f.Question
	if q == "" || q == CustomQuestion {
		q = strings.TrimSpace(f.CustomQuestion)
	}
	return a.users.Register(ctx, f.Username, f.Password, q, f.Answer)
}

func (a *authService) ForgotPassword(ctx context.Context, username string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", fmt.Errorf("%w: enter username", common.ErrorValidation)
	}
	q, err := a.users.LookupSecurityQuestion(ctx, username)
	if err != nil {
		return "", err
	}
	if q == "" {
		q = "Security question not set"
	}
	return q, nil
}

func (a *authService) VerifyAnswer(ctx context.Context, username, answer string) (string, error) {
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("%w: enter answer to security question", common.ErrorValidation)
	}
	username = strings.TrimSpace(username)
	if err := a.users.VerifySecurityAnswer(ctx, username, answer); err != nil {
		return "", err
	}
	tok, err := a.tokens.Issue(ctx, username)
	if err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}
	return a.linkBase + "/reset-password?token=" + url.QueryEscape(tok), nil
}

// CheckResetToken returns the username a token was issued for without
// consuming it.
func (a *authService) CheckResetToken(ctx context.Context, token string) (string, error) {
	return a.tokens.Redeem(ctx, TokenFromLink(token))
}

// ResetPassword sets a new password for the token's user and consumes the
// token. It returns the username.
func (a *authService) ResetPassword(ctx context.Context, token, password, confirm string) (string, error) {
	if password == "" || confirm == "" {
		return "", fmt.Errorf("%w: enter and confirm new password", common.ErrorValidation)
	}
	if password != confirm {
		return "", ErrPasswordMismatch
	}

	token = TokenFromLink(token)
	username, err := a.tokens.Redeem(ctx, token)
	if err != nil {
		return "", err
	}
	if err := a.users.SetPassword(ctx, username, password); err != nil {
		return "", err
	}
	if err := a.tokens.Consume(ctx, token); err != nil {
		a.log.Warn(ctx, "failed to consume reset token", "username", username, "error", err)
	}
	a.log.Info(ctx, "password reset", "username", username)
	return username, nil
}

// TokenFromLink accepts either a bare token or a reset link and returns the
// token.
func TokenFromLink(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "token=") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	return u.Query().Get("token")
}
