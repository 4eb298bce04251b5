package usecases

import (
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// OnboardingTasks seed every empty list the first time it is shown.
var OnboardingTasks = []string{
	"Welcome to your To Do list",
	"Hit + to add new items",
	"<-- hit this box to delete an item",
}

// TodayLabel is the title of the default list, e.g. "Monday, October 19".
func TodayLabel(now time.Time) string {
	return now.Format("Monday, January 2")
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return strings.ToLower(s)
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// NormalizeListName trims surrounding whitespace and capitalizes.
func NormalizeListName(s string) string {
	return Capitalize(strings.TrimSpace(s))
}

// ListRef addresses either the user's default list or one named list.
type ListRef struct {
	name string
}

// DefaultList refers to the user's unnamed, date-titled list.
func DefaultList() ListRef { return ListRef{} }

// NamedList refers to the list with the given stored name.
func NamedList(name string) ListRef { return ListRef{name: name} }

func (r ListRef) IsDefault() bool { return r.name == "" }

func (r ListRef) Name() string { return r.name }

// Path is where the list is shown.
func (r ListRef) Path() string {
	if r.IsDefault() {
		return "/"
	}
	return "/lists/" + url.PathEscape(r.name)
}

// ParseListRef maps the list indicator posted by the list view to a ListRef.
// The list view posts an empty indicator for the default list; today's
// label is still accepted from older forms.
func ParseListRef(indicator string, now time.Time) ListRef {
	if indicator == "" || indicator == TodayLabel(now) {
		return DefaultList()
	}
	return NamedList(indicator)
}
