package cli

import (
	"context"

	"github.com/phrazzld/studytrack/internal/store"
)

func (app *application) runReport(ctx context.Context, args []string) error {
	fs := newFlagSet("report", app.errOut)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	userID, err := app.sessionManager.CurrentUser(ctx)
	if err != nil {
		return err
	}
	totals, err := app.reportService.ReportTimeByCourse(ctx, userID)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		return withMessage(store.ErrStudySessionNotFound, "No study time recorded")
	}
	return renderTable(app.out, []string{"Course", "Sessions", "Time"}, courseTimeRows(totals))
}
