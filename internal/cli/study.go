package cli

import (
	"context"
	"fmt"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/store"
)

func (app *application) runStudy(ctx context.Context, args []string) error {
	fs := newFlagSet("study", app.errOut)
	add := fs.Bool("add", false, "store an explicit interval given by --start and --end")
	start := fs.String("start", "", "interval start for --add, UTC")
	end := fs.String("end", "", "interval end for --add, UTC")
	remove := fs.Bool("delete", false, "delete the study session with the given id")
	list := fs.Bool("list", false, "list your study sessions")
	yes := fs.Bool("yes", false, "delete without asking for confirmation")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := exclusive(fs, "add", "delete", "list"); err != nil {
		return err
	}

	switch {
	case *add:
		course, err := app.argOrPrompt(fs, "Course")
		if err != nil {
			return err
		}
		if *start == "" || *end == "" {
			return usagef("study --add requires --start and --end")
		}
		startAt, err := parseTimestamp(*start)
		if err != nil {
			return err
		}
		endAt, err := parseTimestamp(*end)
		if err != nil {
			return err
		}
		session, err := app.studyService.Add(ctx, course, startAt, endAt)
		if err != nil {
			return err
		}
		app.printStudySession(course, session)
		return nil

	case *remove:
		if fs.NArg() != 1 {
			return usagef("study --delete requires a study session id")
		}
		id, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		if err := app.studyService.Delete(ctx, id, app.confirmer(*yes)); err != nil {
			return err
		}
		fmt.Fprintln(app.out, "Study session deleted")
		return nil

	case *list:
		if err := noArgs(fs); err != nil {
			return err
		}
		return app.listStudySessions(ctx)
	}

	course, err := app.argOrPrompt(fs, "Course")
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Studying %s, press Enter to stop\n", title(domain.NormalizeName(course)))
	session, err := app.studyService.Record(ctx, course, app.prompt.waitForEnter())
	if err != nil {
		return err
	}
	app.printStudySession(course, session)
	return nil
}

func (app *application) printStudySession(course string, session *domain.StudySession) {
	fmt.Fprintln(app.out, "Study session recorded")
	fmt.Fprintf(app.out, "Id: %d\n", session.ID)
	fmt.Fprintf(app.out, "Course: %s\n", title(domain.NormalizeName(course)))
	fmt.Fprintf(app.out, "Duration: %s\n", formatDuration(session.Duration()))
}

func (app *application) listStudySessions(ctx context.Context) error {
	subs, err := app.currentSubscriptions(ctx)
	if err != nil {
		return err
	}

	ids := make([]int64, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ID)
	}

	var sessions []domain.StudySessionView
	if len(ids) > 0 {
		if sessions, err = app.reportService.ListStudySessions(ctx, ids); err != nil {
			return err
		}
	}
	if len(sessions) == 0 {
		return withMessage(store.ErrStudySessionNotFound, "No study sessions recorded")
	}
	return renderTable(app.out,
		[]string{"Id", "User", "Course", "Start", "End", "Time"},
		studySessionRows(sessions))
}
