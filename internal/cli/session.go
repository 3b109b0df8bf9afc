package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/store"
)

func (app *application) runSession(ctx context.Context, args []string) error {
	fs := newFlagSet("session", app.errOut)
	login := fs.Bool("login", false, "open a session for EMAIL")
	logoff := fs.Bool("logoff", false, "close the active session")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := exclusive(fs, "login", "logoff"); err != nil {
		return err
	}

	switch {
	case *login:
		email, err := app.argOrPrompt(fs, "Email")
		if err != nil {
			return err
		}
		return app.login(ctx, email)

	case *logoff:
		if err := noArgs(fs); err != nil {
			return err
		}
		if err := app.sessionManager.Logoff(ctx); err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				return withMessage(err, "no session actived, please login")
			}
			return err
		}
		fmt.Fprintln(app.out, "session closed")
		return nil
	}

	if err := noArgs(fs); err != nil {
		return err
	}
	view, err := app.sessionManager.DescribeActive(ctx)
	if err != nil {
		return err
	}
	return renderTable(app.out,
		[]string{"Id", "User", "Opened On", "Is Active"},
		[][]string{{
			fmt.Sprint(view.ID),
			domain.DisplayEmail(view.UserEmail),
			view.OpenedOn.Format(timestampLayout),
			formatBool(view.IsActive),
		}})
}

// login opens a session, telling a repeated login apart from a new one.
func (app *application) login(ctx context.Context, email string) error {
	var openBefore int64
	active, err := app.sessionManager.DescribeActive(ctx)
	switch {
	case err == nil:
		openBefore = active.ID
	case !errors.Is(err, store.ErrSessionNotFound):
		return err
	}

	session, err := app.sessionManager.Login(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return withMessage(err, "user not found, please check or create a new one")
		}
		return err
	}

	if session.ID == openBefore {
		fmt.Fprintln(app.out, "session already opened")
		return nil
	}
	fmt.Fprintln(app.out, "user logged on")
	return nil
}
