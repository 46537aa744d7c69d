package errs

import (
	"errors"
)

// ExitCode is the process exit status reported for a failed command.
type ExitCode int

const (
	ExitOK ExitCode = iota
	ExitFailure
	ExitPrecondition
	ExitNotFound
	ExitAccessDenied
	ExitConnection
)

// ExitRule maps a chain of internal errors to an exit code.
type ExitRule struct {
	InternalErrorChain []error
	Code               ExitCode
}

type ExitMapper struct {
	Rules         []ExitRule
	PriorityRules []ExitRule
}

func NewExitMapper(rules []ExitRule, priorityRules []ExitRule) ExitMapper {
	return ExitMapper{
		Rules:         rules,
		PriorityRules: priorityRules,
	}
}

// Transform has the following rules to find the best match:
// 1. nil error is ExitOK
// 2. If error is in priority return the priority one
// 3. Return the rule containing the highest number of errors in err chain
// 4. If no rule matches return ExitFailure
func (m *ExitMapper) Transform(err error) ExitCode {
	if err == nil {
		return ExitOK
	}

	for _, rule := range m.PriorityRules {
		if countMatchingErrors(err, rule.InternalErrorChain) > 0 {
			return rule.Code
		}
	}

	best := ExitFailure
	maxCount := 0

	for _, rule := range m.Rules {
		count := countMatchingErrors(err, rule.InternalErrorChain)

		// Skip if the rule contains errors that are not in the err
		if count == 0 || len(rule.InternalErrorChain) > count {
			continue
		}

		if count > maxCount {
			maxCount = count
			best = rule.Code
		}
	}

	return best
}

// countMatchingErrors counts the number of errors in candidates that match err
func countMatchingErrors(err error, candidates []error) int {
	matchCount := 0

	for _, candidateErr := range candidates {
		if errors.Is(err, candidateErr) {
			matchCount++
		}
	}

	return matchCount
}
