package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title string
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// RunWithSpinner executes action while showing a spinner on stdout.
// Without a terminal the action runs directly. Returns the action's error,
// or ctx's error if ctx is done first.
func RunWithSpinner(ctx context.Context, action func(ctx context.Context) error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{title: "Working..."}
	for _, opt := range opts {
		opt(cfg)
	}

	if !IsTTY() {
		return action(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- action(ctx)
	}()

	var result error
	spinnerErr := spinner.New().Title(cfg.title).Action(func() {
		select {
		case <-ctx.Done():
			result = ctx.Err()
		case result = <-errCh:
		}
	}).Run()
	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}
	return result
}
