// Package setup implements the operator-facing setup driver: a terminal
// prompter backed by a huh form and a spinner-based progress indicator.
// Nothing here touches the data path; the driver only renders what a plugin's
// setup flow asks for.
package setup

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/stackbit/sourcebit-sample-plugin/pkg/sourcebit"
)

// NewDriver bundles the terminal prompter and spinner into a SetupDriver.
func NewDriver() *sourcebit.SetupDriver {
	return &sourcebit.SetupDriver{
		Prompter: &TerminalPrompter{},
		Progress: NewSpinner(),
	}
}

// TerminalPrompter renders question descriptors as a huh form.
type TerminalPrompter struct{}

var _ sourcebit.Prompter = (*TerminalPrompter)(nil)

// Prompt shows one input per question and returns the collected answers
// keyed by question name. Numeric questions are validated and returned as
// ints.
func (p *TerminalPrompter) Prompt(questions []sourcebit.Question) (map[string]any, error) {
	values := make([]string, len(questions))
	fields := make([]huh.Field, 0, len(questions))

	for i, question := range questions {
		input := huh.NewInput().
			Title(question.Message).
			Value(&values[i])
		if question.Type == "number" {
			input = input.Validate(validateWholeNumber)
		}
		fields = append(fields, input)
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}

	answers := make(map[string]any, len(questions))
	for i, question := range questions {
		if question.Type == "number" {
			number, err := strconv.Atoi(strings.TrimSpace(values[i]))
			if err != nil {
				return nil, fmt.Errorf("question %s: %w", question.Name, err)
			}
			answers[question.Name] = number
		} else {
			answers[question.Name] = values[i]
		}
	}
	return answers, nil
}

func validateWholeNumber(value string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

var successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

// Spinner shows an animated progress indicator between Start and Succeed.
type Spinner struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

var _ sourcebit.ProgressIndicator = (*Spinner)(nil)

// NewSpinner creates an idle spinner.
func NewSpinner() *Spinner {
	return &Spinner{}
}

// Start begins the spinner animation with the given title. The animation
// runs until Succeed is called.
func (s *Spinner) Start(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		_ = spinner.New().Title(title).Context(ctx).Run()
	}(s.done)
}

// Succeed stops the animation and prints the completion message.
func (s *Spinner) Succeed(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil

	fmt.Println(successMark.Render("✔") + " " + message)
}
