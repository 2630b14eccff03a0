// Package urls provides centralized constants for the links shown by
// correctme: the project page and the issue-reporting mail link.
//
// Usage:
//
//	import "github.com/correctme/correctme/internal/urls"
//
//	fmt.Printf("Report a problem: %s\n", urls.IssueReport())
package urls
