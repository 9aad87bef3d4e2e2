package domain

// ChatMessage is a single turn in an assistant conversation, in the shape
// OpenAI-compatible completion APIs expect.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
