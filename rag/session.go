package rag

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/regchat"
)

// QuestionPrompt is written before each question is read.
const QuestionPrompt = "Question: "

// Session runs the question and answer loop against an Asker, recording
// every exchange in Conversation.
type Session struct {
	Asker        regchat.Asker
	Conversation *regchat.Conversation
	Formatter    *regchat.StreamFormatter

	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Ask answers one question, printing the wrapped answer as it streams. The
// transcript is updated with whatever was rendered, even when the stream
// fails part way.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	logger := loggerOrDiscard(s.Logger)

	history := s.Conversation.History()
	logger.Info("question", "text", question)
	logger.Info("conversation history", "text", history)

	answer, err := s.Formatter.Format(s.Stdout, s.Asker.Ask(ctx, question, history))
	s.Conversation.Update(question, answer)

	logger.Info("answer", "text", answer)
	return answer, err
}

// Run reads one question per line from in until EOF or ctx is done.
// Blank lines are ignored.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for ctx.Err() == nil {
		fmt.Fprint(s.Stdout, QuestionPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.Stdout)
			break
		}

		if question := strings.TrimSpace(scanner.Text()); question != "" {
			s.Questions(ctx, question)
		}
	}

	if ctx.Err() != nil {
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read question: %w", err)
	}
	return nil
}

// Questions asks each question in order. A failed answer is reported on
// Stderr and does not stop the remaining questions; ctx being done does.
func (s *Session) Questions(ctx context.Context, questions ...string) {
	for _, q := range questions {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.Ask(ctx, q); err != nil && ctx.Err() == nil {
			fmt.Fprintf(s.Stderr, "error: %s\n", regchat.ErrorMessage(err))
		}
	}
}
