// Package confirm shows a proposed commit message and resolves the user's
// answer into accept, edit or abort.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Choice is the parsed answer to the confirmation prompt.
type Choice int

const (
	Abort Choice = iota
	Accept
	Edit
)

func (c Choice) String() string {
	switch c {
	case Accept:
		return "accept"
	case Edit:
		return "edit"
	default:
		return "abort"
	}
}

// PromptText is printed before reading the answer.
const PromptText = "Options: [y] commit, [e] edit; any other key aborts: "

// ParseChoice maps an answer to a Choice: a leading "y" accepts, a leading
// "e" edits, and anything else (including no input) aborts. Case-insensitive.
func ParseChoice(s string) Choice {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "y"):
		return Accept
	case strings.HasPrefix(s, "e"):
		return Edit
	default:
		return Abort
	}
}

// MessageEditor lets the user rewrite a message.
type MessageEditor interface {
	Edit(ctx context.Context, message string) (string, error)
}

// Outcome is the result of Resolve. Message is the text to commit when Accepted.
type Outcome struct {
	Choice   Choice
	Accepted bool
	Message  string
	Edited   bool
}

// Loop drives one confirmation round.
type Loop struct {
	In     io.Reader
	Out    io.Writer
	Editor MessageEditor
	// SkipPrompt accepts the proposed message without asking.
	SkipPrompt bool
}

// Resolve asks for a choice and applies it. An edit that the editor rejects
// (ErrEditAborted) becomes an abort with a nil error; other editor failures
// are returned alongside an aborted outcome.
func (l *Loop) Resolve(ctx context.Context, message string) (Outcome, error) {
	if l.SkipPrompt {
		return Outcome{Choice: Accept, Accepted: true, Message: message}, nil
	}
	if l.Out != nil {
		fmt.Fprint(l.Out, PromptText)
	}
	answer, err := readLine(l.In)
	if err != nil {
		return Outcome{Choice: Abort}, fmt.Errorf("read answer: %w", err)
	}
	choice := ParseChoice(answer)
	switch choice {
	case Accept:
		return Outcome{Choice: Accept, Accepted: true, Message: message}, nil
	case Edit:
		if l.Editor == nil {
			return Outcome{Choice: Edit}, errors.New("confirm: no editor configured")
		}
		edited, err := l.Editor.Edit(ctx, message)
		if errors.Is(err, ErrEditAborted) {
			return Outcome{Choice: Edit}, nil
		}
		if err != nil {
			return Outcome{Choice: Edit}, err
		}
		return Outcome{Choice: Edit, Accepted: true, Message: edited, Edited: true}, nil
	default:
		return Outcome{Choice: Abort}, nil
	}
}

// readLine returns one line from r without the newline. EOF before any input
// yields "".
func readLine(r io.Reader) (string, error) {
	if r == nil {
		return "", nil
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
