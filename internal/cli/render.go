package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/phrazzld/studytrack/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// title renders a stored upper-case name for display.
func title(name string) string {
	return cases.Title(language.Und).String(name)
}

// renderTable writes a plain column-aligned table with a dashed rule under
// the header.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rules := make([]string, len(headers))
	for i, h := range headers {
		rules[i] = strings.Repeat("-", len(h))
	}

	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// formatDuration renders d as H:MM:SS.
func formatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func categoryRows(categories []domain.Category) [][]string {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{fmt.Sprint(c.ID), title(c.Name)})
	}
	return rows
}

func courseRows(courses []domain.CourseView) [][]string {
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{fmt.Sprint(c.ID), title(c.Name), title(c.CategoryName)})
	}
	return rows
}

func userRows(users []domain.User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{fmt.Sprint(u.ID), u.DisplayEmail()})
	}
	return rows
}

func subscriptionRows(subs []domain.SubscriptionView) [][]string {
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []string{
			domain.DisplayEmail(s.UserEmail),
			title(s.CourseName),
			title(s.CategoryName),
			s.SubscribedOn.Format(dateLayout),
			s.ConclusionOn.Format(dateLayout),
		})
	}
	return rows
}

func studySessionRows(sessions []domain.StudySessionView) [][]string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			fmt.Sprint(s.ID),
			domain.DisplayEmail(s.UserEmail),
			title(s.CourseName),
			s.StartSession.Format(timestampLayout),
			s.EndSession.Format(timestampLayout),
			formatDuration(s.Duration()),
		})
	}
	return rows
}

func courseTimeRows(totals []domain.CourseTime) [][]string {
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{title(t.CourseName), fmt.Sprint(t.Sessions), formatDuration(t.Total)})
	}
	return rows
}
