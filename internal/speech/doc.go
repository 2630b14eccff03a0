// Package speech turns spoken audio into text for the input box.
//
// A Recognizer produces one final transcript per call. The streaming
// implementation reads raw audio from an AudioSource (usually a capture
// command such as arecord) and forwards it over a WebSocket to a speech to
// text service, which answers with JSON frames:
//
//	{"transcript": "hello there", "is_final": true}
//
// Listen wraps a Recognizer for UI use: an unavailable recognizer or an
// empty transcript is silently ignored.
package speech
