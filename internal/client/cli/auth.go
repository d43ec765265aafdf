package cli

import (
	"context"
	"errors"

	"github.com/BuiltByShivam/smart-inventory/internal/client/services"
)

func (a *App) login(ctx context.Context, _ []string) error {
	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	password, err := a.askSecret("Password")
	if err != nil {
		return err
	}

	u, err := a.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.out.Success("Welcome, %s (%s)", u.Username, u.Role)
	a.query, a.page, a.lowQuery, a.lowPage = "", 1, "", 1

	if err := a.inventory.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "product load after login failed", "error", err)
		a.out.Warning("%s", describe(err))
	}
	return nil
}

func (a *App) logout(ctx context.Context, args []string) error {
	if len(args) == 0 {
		if err := a.auth.Logout(ctx); err != nil {
			return err
		}
		a.out.Success("Logged out")
		return nil
	}
	if len(args) != 1 || args[0] != "purge" {
		return usageError("logout")
	}
	ok, err := Confirm(a.reader, "Delete all local users, settings and reset tokens?", a.w())
	if err != nil || !ok {
		return err
	}
	if err := a.auth.ClearOfflineData(ctx); err != nil {
		return err
	}
	a.out.Success("Logged out; local data cleared")
	return nil
}

func (a *App) signup(ctx context.Context, _ []string) error {
	var (
		f   services.SignupForm
		err error
	)
	if f.Username, err = a.ask("Username"); err != nil {
		return err
	}
	if f.Password, err = a.askSecret("Password"); err != nil {
		return err
	}
	if f.Confirm, err = a.askSecret("Confirm password"); err != nil {
		return err
	}
	if f.Question, err = GetChoice(a.reader, "Security question", services.SecurityQuestions, a.w()); err != nil {
		return err
	}
	if f.Question == services.CustomQuestion {
		if f.CustomQuestion, err = a.ask("Your question"); err != nil {
			return err
		}
	}
	if f.Answer, err = a.ask("Answer"); err != nil {
		return err
	}

	u, err := a.auth.Signup(ctx, f)
	if err != nil {
		return err
	}
	a.out.Success("Account %s created, please login.", u.Username)
	return nil
}

func (a *App) forgot(ctx context.Context, _ []string) error {
	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	question, err := a.auth.ForgotPassword(ctx, username)
	if err != nil {
		return err
	}
	a.out.Info("Security question: %s", question)

	answer, err := a.ask("Answer")
	if err != nil {
		return err
	}
	link, err := a.auth.VerifyAnswer(ctx, username, answer)
	if err != nil {
		return err
	}
	a.out.Success("Security verified. Reset link generated (simulated):")
	a.out.Info("  %s", link)
	a.out.Info("Use 'reset <link>' within 30 minutes.")
	return nil
}

func (a *App) reset(ctx context.Context, args []string) error {
	token := joinArgs(args)
	if token == "" {
		var err error
		if token, err = a.ask("Reset token or link"); err != nil {
			return err
		}
	}
	if token == "" {
		return errors.New("no token provided")
	}

	username, err := a.auth.CheckResetToken(ctx, token)
	if err != nil {
		return err
	}
	a.out.Info("Resetting password for %s.", username)

	password, err := a.askSecret("New password")
	if err != nil {
		return err
	}
	confirm, err := a.askSecret("Confirm password")
	if err != nil {
		return err
	}
	if _, err := a.auth.ResetPassword(ctx, token, password, confirm); err != nil {
		return err
	}
	a.out.Success("Password updated successfully. Please login.")
	return nil
}
