package domain

// Message is one entry in a user's chat history. Timestamp is assigned by
// the server when the message is received, in RFC 3339 form.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"message"`
	Timestamp string `json:"timestamp"`
}
