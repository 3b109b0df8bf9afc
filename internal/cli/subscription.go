package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/store"
)

// askPeriod resolves a subscription period. Dates given as flags are used
// as is; missing ones are asked for, defaulting to today and the configured
// course length.
func (app *application) askPeriod(fromFlag, untilFlag string) (time.Time, time.Time, error) {
	var err error

	fromText := fromFlag
	if fromText == "" {
		today := domain.Date(app.now()).Format(dateLayout)
		if fromText, err = app.prompt.ask("Subscribed on", today); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	from, err := parseDate(fromText)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	untilText := untilFlag
	if untilText == "" {
		conclusion := from.AddDate(0, 0, 7*app.config.Study.DefaultCourseWeeks).Format(dateLayout)
		if untilText, err = app.prompt.ask("Conclusion on", conclusion); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	until, err := parseDate(untilText)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return from, until, nil
}

// subscribe subscribes the current user. Zero dates take the service defaults.
func (app *application) subscribe(ctx context.Context, courseName string, from, until time.Time) error {
	sub, err := app.subscriptionService.Subscribe(ctx, courseName, from, until)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, "User subscribed")
	fmt.Fprintf(app.out, "Course: %s\n", title(domain.NormalizeName(courseName)))
	fmt.Fprintf(app.out, "From %s until %s\n",
		sub.SubscribedOn.Format(dateLayout), sub.ConclusionOn.Format(dateLayout))
	return nil
}

func (app *application) runSubscription(ctx context.Context, args []string) error {
	fs := newFlagSet("subscription", app.errOut)
	create := fs.Bool("new", false, "subscribe to a course")
	remove := fs.Bool("delete", false, "remove a subscription")
	from := fs.String("from", "", "subscription date, YYYY-MM-DD")
	until := fs.String("until", "", "planned conclusion date, YYYY-MM-DD")
	yes := fs.Bool("yes", false, "delete without asking for confirmation")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := exclusive(fs, "new", "delete"); err != nil {
		return err
	}

	switch {
	case *create:
		course, err := app.argOrPrompt(fs, "Course")
		if err != nil {
			return err
		}
		subscribedOn, conclusionOn, err := app.askPeriod(*from, *until)
		if err != nil {
			return err
		}
		return app.subscribe(ctx, course, subscribedOn, conclusionOn)

	case *remove:
		course, err := app.argOrPrompt(fs, "Course")
		if err != nil {
			return err
		}
		if err := app.subscriptionService.Unsubscribe(ctx, course, app.confirmer(*yes)); err != nil {
			return err
		}
		fmt.Fprintln(app.out, "Subscription deleted")
		return nil
	}

	if err := noArgs(fs); err != nil {
		return err
	}
	subs, err := app.currentSubscriptions(ctx)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return withMessage(store.ErrSubscriptionNotFound, "No courses subscribed")
	}
	return renderTable(app.out,
		[]string{"User", "Course", "Category", "Subscribed On", "Conclusion On"},
		subscriptionRows(subs))
}

// currentSubscriptions lists the subscriptions of the logged-in user.
func (app *application) currentSubscriptions(ctx context.Context) ([]domain.SubscriptionView, error) {
	userID, err := app.sessionManager.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return app.reportService.ListSubscriptions(ctx, userID)
}
