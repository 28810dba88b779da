package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// ConfigurationError reports an invalid venue, team, preference or model
// configuration. It is raised while inputs are constructed and never after
// the solver has been invoked.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (err *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %v: %v", err.Field, err.Reason)
}

func configurationError(field string, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NoViableScenarioError aborts a sweep in which every configured scenario
// was rejected. Callers must never mistake an all-rejected sweep for an
// empty success.
type NoViableScenarioError struct {
	Rejected map[int]Rejection
}

func (err *NoViableScenarioError) Error() string {
	scenarios := lo.Keys(err.Rejected)
	slices.Sort(scenarios)
	statuses := lo.Map(scenarios, func(requiredDays int, _ int) string {
		return fmt.Sprintf("%v days (%v)", requiredDays, err.Rejected[requiredDays].Status)
	})
	return fmt.Sprintf("every scenario was rejected: %v", strings.Join(statuses, ", "))
}
