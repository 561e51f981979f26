package clzgen

import (
	"fmt"
	"strings"
)

// Action selects how the configured input is traversed.
type Action string

const (
	// ModuleAction lists every archive of a module distribution tree (e.g. an EAP "modules" directory).
	ModuleAction Action = "EAP"

	// APIAction lists the classes of a single API archive (e.g. javaee-api-7.0.jar).
	APIAction Action = "EE"
)

var AllActions = []Action{
	ModuleAction,
	APIAction,
}

// ParseAction matches the configured value against the known actions, case-sensitively.
func ParseAction(value string) (Action, error) {
	value = strings.TrimSpace(value)
	for _, a := range AllActions {
		if string(a) == value {
			return a, nil
		}
	}
	return "", fmt.Errorf("unsupported action=%q (expected one of %v)", value, AllActions)
}
