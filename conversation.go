package regchat

import "strings"

// Exchange is one question and the answer rendered for it.
type Exchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Conversation is the transcript of a chat session. Exchanges are kept in
// the order they happened and are never modified once recorded.
//
// The transcript grows without bound for the life of the session and the
// whole of it is replayed into every prompt unless Limit is set.
type Conversation struct {
	exchanges []Exchange

	// Limit caps the number of most recent exchanges History replays.
	// Zero replays everything. The transcript itself is not trimmed.
	Limit int
}

// NewConversation returns an empty conversation.
func NewConversation(limit int) *Conversation {
	return &Conversation{Limit: limit}
}

// Update appends a question/answer pair to the transcript.
func (c *Conversation) Update(question, answer string) {
	c.exchanges = append(c.exchanges, Exchange{Question: question, Answer: answer})
}

// History returns the transcript as alternating "QUESTION: " and "ANSWER: "
// lines in insertion order.
func (c *Conversation) History() string {
	exchanges := c.exchanges
	if c.Limit > 0 && len(exchanges) > c.Limit {
		exchanges = exchanges[len(exchanges)-c.Limit:]
	}

	var sb strings.Builder
	for _, e := range exchanges {
		sb.WriteString("QUESTION: ")
		sb.WriteString(e.Question)
		sb.WriteString("\nANSWER: ")
		sb.WriteString(e.Answer)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Exchanges returns a copy of the transcript.
func (c *Conversation) Exchanges() []Exchange {
	out := make([]Exchange, len(c.exchanges))
	copy(out, c.exchanges)
	return out
}

// Len returns the number of recorded exchanges.
func (c *Conversation) Len() int {
	return len(c.exchanges)
}
