package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/studytrack/internal/service"
	flag "github.com/spf13/pflag"
)

// argOrPrompt returns the single positional argument of fs, or asks for it.
func (app *application) argOrPrompt(fs *flag.FlagSet, label string) (string, error) {
	switch fs.NArg() {
	case 0:
		return app.prompt.ask(label, "")
	case 1:
		return fs.Arg(0), nil
	default:
		return "", usagef("too many arguments: %s", strings.Join(fs.Args(), " "))
	}
}

// confirmer returns the confirmation used by deletes. --yes skips the prompt.
func (app *application) confirmer(skip bool) service.Confirm {
	if skip {
		return nil
	}
	return func() (bool, error) {
		return app.prompt.confirm("Are you sure?")
	}
}

func noArgs(fs *flag.FlagSet) error {
	if fs.NArg() > 0 {
		return usagef("unexpected argument %q", fs.Arg(0))
	}
	return nil
}

// exclusive fails when more than one of the mode flags is set.
func exclusive(fs *flag.FlagSet, modes ...string) error {
	set := 0
	fs.Visit(func(f *flag.Flag) {
		for _, m := range modes {
			if f.Name == m && f.Value.String() == "true" {
				set++
			}
		}
	})
	if set > 1 {
		names := make([]string, len(modes))
		for i, m := range modes {
			names[i] = "--" + m
		}
		return usagef("flags %s are mutually exclusive", strings.Join(names, ", "))
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, usagef("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	timestampLayout,
	"2006-01-02 15:04",
}

// parseTimestamp accepts RFC 3339 or "YYYY-MM-DD HH:MM[:SS]" in UTC.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, usagef("invalid time %q, expected YYYY-MM-DD HH:MM[:SS]", value)
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, usagef("invalid id %q", value)
	}
	return id, nil
}
