// Package server implements a stand-in correction service for local
// development.
//
// It speaks the same HTTP contract as the real grammar service:
//
//	POST /spellcheck  {"text": "helo"}  ->  200 {"correctedText": "helo [corrected]"}
//	                  {"text": "  "}    ->  400 {"error": "No text provided"}
//	GET  /                              ->  200 {"message": "..."}
//
// The response is not a real correction; it marks the input so the client
// flow can be exercised end to end without a language model.
//
// # Usage Example
//
//	srv, err := server.New(&server.Config{
//	    Host:  "127.0.0.1",
//	    Port:  8000,
//	    Delay: 2 * time.Second, // keep the client in flight long enough to see it
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start blocks until SIGINT or SIGTERM
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Failure Injection
//
// Config.Status forces every correction request to answer with that status
// code, which drives clients into their error state.
//
// # Graceful Shutdown
//
// On SIGINT or SIGTERM the server stops accepting connections, lets
// in-flight requests finish and withdraws its mDNS announcement.
package server
