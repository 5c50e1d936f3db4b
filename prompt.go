package regchat

import "strings"

// Prompt template placeholders.
const (
	PlaceholderContext      = "{context}"
	PlaceholderQuestion     = "{question}"
	PlaceholderConversation = "{conversation}"
)

// PromptValues are interpolated into a PromptTemplate.
type PromptValues struct {
	Context      string
	Question     string
	Conversation string
}

// PromptTemplate is a model prompt with named placeholders for the
// retrieved context, the question and the conversation history.
type PromptTemplate struct {
	text string
}

// ParsePromptTemplate validates that text contains every placeholder.
func ParsePromptTemplate(text string) (*PromptTemplate, error) {
	for _, p := range []string{PlaceholderContext, PlaceholderQuestion, PlaceholderConversation} {
		if !strings.Contains(text, p) {
			return nil, Errorf(EINVALID, "prompt template missing %s placeholder", p)
		}
	}
	return &PromptTemplate{text: text}, nil
}

// Render substitutes the placeholders in a single pass, so values that
// happen to contain placeholder text are inserted verbatim.
func (t *PromptTemplate) Render(v PromptValues) string {
	r := strings.NewReplacer(
		PlaceholderContext, v.Context,
		PlaceholderQuestion, v.Question,
		PlaceholderConversation, v.Conversation,
	)
	return r.Replace(t.text)
}

// String returns the raw template text.
func (t *PromptTemplate) String() string {
	return t.text
}
