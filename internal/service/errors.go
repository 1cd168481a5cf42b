package service

import (
	"errors"
	"fmt"
	"strings"

	"splitbridge/internal/models"
	"splitbridge/internal/money"
)

// ValidationError rejects bad tool input. The message is written for the
// chat user and surfaced verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// UserError replaces an upstream failure with guidance for the chat user.
// The cause stays wrapped for logs.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string { return e.Msg }
func (e *UserError) Unwrap() error { return e.Err }

// DuplicateParticipantError means the same friend was named more than
// once in a split.
type DuplicateParticipantError struct{}

func (e *DuplicateParticipantError) Error() string {
	return "Duplicate friends detected. Please specify each person only once."
}

// ResolutionError means a fuzzy lookup found nothing above the match
// threshold. Kind is "friend" or "group"; Suggestions holds the
// near-misses offered back to the user.
type ResolutionError struct {
	Kind        string
	Query       string
	Suggestions []string
	Msg         string
}

func (e *ResolutionError) Error() string { return e.Msg }

func friendNotFound(name string, candidates []models.Friend) *ResolutionError {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.FullName())
	}
	msg := fmt.Sprintf("Could not find friend '%s' in your Splitwise friends list.", name)
	if len(names) > 0 {
		msg = fmt.Sprintf("Could not find friend '%s'. Did you mean: %s?", name, strings.Join(names, ", "))
	}
	return &ResolutionError{Kind: "friend", Query: name, Suggestions: names, Msg: msg}
}

func groupNotFound(name string, groups []models.Group) *ResolutionError {
	names := make([]string, 0, min(len(groups), 5))
	for _, g := range groups[:min(len(groups), 5)] {
		names = append(names, g.Name)
	}
	msg := fmt.Sprintf("Could not find group '%s'. You don't have any groups.", name)
	if len(names) > 0 {
		msg = fmt.Sprintf("Could not find group '%s'. Your groups: %s", name, strings.Join(names, ", "))
	}
	return &ResolutionError{Kind: "group", Query: name, Suggestions: names, Msg: msg}
}

// UserFacing extracts a message that can be shown to the chat user
// verbatim. It reports false for errors that still need a generic
// "Failed to ..." wrapper.
func UserFacing(err error) (string, bool) {
	var (
		validation *ValidationError
		user       *UserError
		duplicate  *DuplicateParticipantError
		resolution *ResolutionError
		amount     *money.InvalidAmountError
	)
	switch {
	case errors.As(err, &validation):
		return validation.Msg, true
	case errors.As(err, &user):
		return user.Msg, true
	case errors.As(err, &duplicate):
		return duplicate.Error(), true
	case errors.As(err, &resolution):
		return resolution.Msg, true
	case errors.As(err, &amount):
		return amount.Error(), true
	}
	return "", false
}
