package request

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	dateLayout        = "2006-01-02"
	dateDisplayLayout = "02/01/2006"
)

var titleCaser = cases.Title(language.English)

// displayType renders the enum value for email bodies: PAID -> Paid.
func displayType(t string) string {
	return titleCaser.String(strings.ToLower(t))
}

func submittedSubject(r *TimeOffRequest) string {
	return fmt.Sprintf("%s leave request '%d' has been submitted!", displayType(r.Type), r.ID)
}

func submittedBody(r *TimeOffRequest, requesterName string) string {
	return fmt.Sprintf(
		"User '%s' submitted a %s leave request from %s until %s. The request awaits your approval.",
		requesterName,
		displayType(r.Type),
		r.StartDate.Format(dateDisplayLayout),
		r.EndDate.Format(dateDisplayLayout),
	)
}

func autoApprovedBody(r *TimeOffRequest, requesterName string) string {
	return fmt.Sprintf(
		"User '%s' submitted a %s leave request from %s until %s. The request was approved automatically.",
		requesterName,
		displayType(r.Type),
		r.StartDate.Format(dateDisplayLayout),
		r.EndDate.Format(dateDisplayLayout),
	)
}

func approvedSubject(r *TimeOffRequest) string {
	return fmt.Sprintf("Request with id '%d' has been approved!", r.ID)
}

func approvedBody(r *TimeOffRequest) string {
	return fmt.Sprintf(
		"Your %s leave request from %s until %s has been APPROVED!",
		displayType(r.Type),
		r.StartDate.Format(dateDisplayLayout),
		r.EndDate.Format(dateDisplayLayout),
	)
}

func rejectedSubject(r *TimeOffRequest) string {
	return fmt.Sprintf("Request with id '%d' has been rejected!", r.ID)
}

func rejectedBody(r *TimeOffRequest, requesterName string) string {
	return fmt.Sprintf(
		"The %s leave request of user '%s' from %s until %s has been REJECTED!",
		displayType(r.Type),
		requesterName,
		r.StartDate.Format(dateDisplayLayout),
		r.EndDate.Format(dateDisplayLayout),
	)
}
