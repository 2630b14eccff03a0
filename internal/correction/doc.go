// Package correction provides the HTTP client for the external text
// correction service.
//
// The service contract is a single JSON endpoint:
//
//	POST /spellcheck
//	Content-Type: application/json
//
//	{"text": "she go school every day"}
//
// A successful response carries the corrected text:
//
//	{"correctedText": "She goes to school every day"}
//
// Failures are reported with a non-2xx status and, usually, an error body:
//
//	{"error": "No text provided"}
//
// # Usage
//
//	client := correction.NewClient("http://127.0.0.1:8000")
//	corrected, err := client.Correct(ctx, "teh cat")
//	if err != nil {
//	    fmt.Println(correction.UserFriendlyMessage(err))
//	}
//
// # Errors
//
// All failures are returned as *ServiceError values classified by ErrorType
// (network, timeout, connection refused, DNS, HTTP, parse). A success
// response whose correctedText field is missing or empty is not an error:
// Correct returns "" and the caller decides what to show.
//
// The client performs exactly one request per call. It does not retry and,
// unless SetTimeout is used, does not time out; cancel the context to abandon
// a request.
package correction
