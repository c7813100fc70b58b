package itemstatus

import (
	"strings"
)

type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	parts := strings.Split(s.Name, "-")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, " ")
}

type Enum struct {
	Idle    Status
	Loading Status
	Success Status
	Error   Status
}

var Statuses = Enum{
	Idle:    Status{Name: "idle"},
	Loading: Status{Name: "loading"},
	Success: Status{Name: "success"},
	Error:   Status{Name: "error"},
}

var All = []Status{
	Statuses.Idle,
	Statuses.Loading,
	Statuses.Success,
	Statuses.Error,
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}

// IsTerminal reports whether the status is a settled submission outcome.
func IsTerminal(name string) bool {
	return name == Statuses.Success.Name || name == Statuses.Error.Name
}
