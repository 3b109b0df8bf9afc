package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/studytrack/internal/store"
)

func (app *application) runUser(ctx context.Context, args []string) error {
	fs := newFlagSet("user", app.errOut)
	create := fs.Bool("new", false, "create a user")
	remove := fs.Bool("delete", false, "delete a user")
	yes := fs.Bool("yes", false, "delete without asking for confirmation")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := exclusive(fs, "new", "delete"); err != nil {
		return err
	}

	switch {
	case *create:
		email, err := app.argOrPrompt(fs, "Email")
		if err != nil {
			return err
		}
		user, err := app.userService.Create(ctx, email)
		if err != nil {
			return err
		}
		fmt.Fprintln(app.out, "New user created")
		fmt.Fprintf(app.out, "Email: %s\n", user.DisplayEmail())
		return nil

	case *remove:
		email, err := app.argOrPrompt(fs, "Email")
		if err != nil {
			return err
		}
		if err := app.userService.Delete(ctx, email, app.confirmer(*yes)); err != nil {
			return err
		}
		fmt.Fprintln(app.out, "User deleted")
		return nil
	}

	if err := noArgs(fs); err != nil {
		return err
	}
	users, err := app.reportService.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return withMessage(store.ErrUserNotFound, "Users not found")
	}
	return renderTable(app.out, []string{"Id", "Email"}, userRows(users))
}

func (app *application) runCategory(ctx context.Context, args []string) error {
	fs := newFlagSet("category", app.errOut)
	create := fs.Bool("new", false, "create a category")
	remove := fs.Bool("delete", false, "delete a category")
	yes := fs.Bool("yes", false, "delete without asking for confirmation")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := exclusive(fs, "new", "delete"); err != nil {
		return err
	}

	switch {
	case *create:
		name, err := app.argOrPrompt(fs, "Name")
		if err != nil {
			return err
		}
		category, err := app.categoryService.Create(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(app.out, "New category created")
		fmt.Fprintf(app.out, "Name: %s\n", title(category.Name))
		return nil

	case *remove:
		name, err := app.argOrPrompt(fs, "Name")
		if err != nil {
			return err
		}
		if err := app.categoryService.Delete(ctx, name, app.confirmer(*yes)); err != nil {
			return err
		}
		fmt.Fprintln(app.out, "Category deleted")
		return nil
	}

	if err := noArgs(fs); err != nil {
		return err
	}
	categories, err := app.reportService.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return withMessage(store.ErrCategoryNotFound, "Categories not found")
	}
	return renderTable(app.out, []string{"Id", "Name"}, categoryRows(categories))
}

func (app *application) runCourse(ctx context.Context, args []string) error {
	fs := newFlagSet("course", app.errOut)
	create := fs.Bool("new", false, "create a course")
	remove := fs.Bool("delete", false, "delete a course")
	categoryName := fs.String("category", "", "category of the new course")
	subscribe := fs.Bool("subscribe", false, "subscribe to the new course with default dates")
	yes := fs.Bool("yes", false, "skip confirmation and subscription prompts")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := exclusive(fs, "new", "delete"); err != nil {
		return err
	}

	switch {
	case *create:
		name, err := app.argOrPrompt(fs, "Name")
		if err != nil {
			return err
		}
		category := *categoryName
		if category == "" {
			if category, err = app.prompt.ask("Category", ""); err != nil {
				return err
			}
		}

		course, err := app.courseService.Create(ctx, name, category)
		if err != nil {
			return err
		}
		fmt.Fprintln(app.out, "New course created")
		fmt.Fprintf(app.out, "Name: %s\n", title(course.Name))

		switch {
		case *subscribe:
			return app.subscribe(ctx, course.Name, time.Time{}, time.Time{})
		case *yes:
			return nil
		}
		ok, err := app.prompt.confirm("Do you want to subscribe?")
		if err != nil || !ok {
			return err
		}
		from, until, err := app.askPeriod("", "")
		if err != nil {
			return err
		}
		return app.subscribe(ctx, course.Name, from, until)

	case *remove:
		name, err := app.argOrPrompt(fs, "Name")
		if err != nil {
			return err
		}
		if err := app.courseService.Delete(ctx, name, app.confirmer(*yes)); err != nil {
			return err
		}
		fmt.Fprintln(app.out, "Course deleted")
		return nil
	}

	if err := noArgs(fs); err != nil {
		return err
	}
	courses, err := app.reportService.ListCourses(ctx)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		return withMessage(store.ErrCourseNotFound, "Courses not found")
	}
	return renderTable(app.out, []string{"Id", "Name", "Category"}, courseRows(courses))
}
