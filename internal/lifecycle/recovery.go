package lifecycle

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// Decision is the user's answer to a load failure.
type Decision int

const (
	Exit Decision = iota
	ContinueDegraded
)

func (d Decision) String() string {
	if d == ContinueDegraded {
		return "continue"
	}
	return "exit"
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

const (
	guidanceLatestVersion = "Please make sure you have the latest version of the game and of this editor."
	guidanceLimited       = "Would you like to launch with limited features?"
)

// RecoveryPolicy turns a load failure into a continue-or-exit decision.
type RecoveryPolicy struct {
	prompter Prompter
	title    string
	log      zerolog.Logger
}

// NewRecoveryPolicy builds a policy; appTitle is "<name> <version>".
func NewRecoveryPolicy(prompter Prompter, appTitle string, log zerolog.Logger) *RecoveryPolicy {
	return &RecoveryPolicy{
		prompter: prompter,
		title:    strings.TrimSpace(appTitle + " - Error"),
		log:      log.With().Str("component", "recovery").Logger(),
	}
}

// Decide prompts once. Only an explicit yes continues.
func (r *RecoveryPolicy) Decide(ctx context.Context, cause error) Decision {
	yes, err := r.prompter.Confirm(ctx, r.title, FailureMessage(cause))
	if err != nil {
		r.log.Warn().Err(err).Msg("recovery prompt dismissed")
		return Exit
	}
	if yes {
		return ContinueDegraded
	}
	return Exit
}

// FailureMessage is the prompt body for cause.
func FailureMessage(cause error) string {
	reason := "Unknown error."
	var loadErr *LoadError
	if errors.As(cause, &loadErr) && loadErr.Err != nil {
		reason = loadErr.Err.Error()
	} else if cause != nil {
		reason = cause.Error()
	}
	return reason + "\n\n" + guidanceLatestVersion + "\n\n" + guidanceLimited
}
