package submission

const (
	// FallbackText replaces an empty correction from the service
	FallbackText = "No corrections found."

	// ErrorMarker is shown as the output when a submission fails
	ErrorMarker = "⚠️ Error contacting AI service."
)

// StatusMessages are the candidate status lines shown while in flight.
// One is drawn uniformly at random when a submission starts.
var StatusMessages = [...]string{
	"🤖 Analyzing grammar...",
	"🧠 Correcting spelling...",
	"✨ Polishing your writing...",
	"📖 Checking sentence flow...",
	"🪄 Refining your text...",
}
