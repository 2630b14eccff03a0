package urls

import (
	"net/url"
	"strings"
)

// ProjectURL is the project home page
const ProjectURL = "https://github.com/correctme/correctme"

// IssueRecipient receives issue reports sent from the settings menu
const IssueRecipient = "32kumariruchi@gmail.com"

// IssueSubject is the subject line of an issue report
const IssueSubject = "Issue with CorrectMe"

// IssueBody is the prefilled body of an issue report
const IssueBody = "Describe your issue:"

// IssueReport returns the mailto link used for manual issue reporting.
// The recipient, subject and body are fixed.
func IssueReport() string {
	q := url.Values{}
	q.Set("subject", IssueSubject)
	q.Set("body", IssueBody)

	// mailto consumers expect %20 rather than '+' for spaces
	return "mailto:" + IssueRecipient + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}
