package content

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Problem is a content defect found by Check.
type Problem struct {
	File    string
	Field   string
	Message string
}

func (p Problem) String() string {
	if p.Field == "" {
		return fmt.Sprintf("%s: %s", p.File, p.Message)
	}
	return fmt.Sprintf("%s: %s %s", p.File, p.Field, p.Message)
}

// Validate reports missing titles and dates, unparseable dates and blank tags.
func (m FrontMatter) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Date, validation.Required, validation.By(parseableDate)),
		validation.Field(&m.Tags, validation.Each(validation.Required)),
	)
}

func parseableDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, ok := ParseDate(s); !ok {
		return errors.New("is not a recognisable date")
	}
	return nil
}

// Check reads every entry and reports defects that ListPosts would silently
// tolerate, plus slugs that only differ by case. An error is returned only
// when the directory itself cannot be read.
func (l *Lister) Check(ctx context.Context) ([]Problem, error) {
	raws, err := ListEntries(ctx, l.fs, l.ext)
	if err != nil {
		return nil, err
	}

	var problems []Problem
	seen := make(map[string]string, len(raws))
	for _, r := range raws {
		folded := strings.ToLower(r.Slug)
		if other, ok := seen[folded]; ok {
			problems = append(problems, Problem{
				File:    r.Name,
				Field:   "slug",
				Message: fmt.Sprintf("collides with %q on case-insensitive file systems", other),
			})
		} else {
			seen[folded] = r.Slug
		}

		e, err := ParseEntry(r.Data)
		if err != nil {
			problems = append(problems, Problem{File: r.Name, Message: err.Error()})
			continue
		}
		problems = append(problems, validationProblems(r.Name, e.Meta.Validate())...)
	}
	return problems, nil
}

func validationProblems(file string, err error) []Problem {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return []Problem{{File: file, Message: err.Error()}}
	}
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	problems := make([]Problem, 0, len(fields))
	for _, field := range fields {
		problems = append(problems, Problem{File: file, Field: field, Message: errs[field].Error()})
	}
	return problems
}
