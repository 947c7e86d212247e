package ai

// MaxHistory is the number of most recent messages sent to the chat model.
const MaxHistory = 10

// TrimHistory returns the last MaxHistory messages of history.
// The returned slice shares its backing array with history.
func TrimHistory(history []Message) []Message {
	if len(history) <= MaxHistory {
		return history
	}
	return history[len(history)-MaxHistory:]
}
