package controller

import "strings"

// Operation names an action of a resource in its allow-list.
type Operation string

// Operations of a resource.
const (
	OpIndex  Operation = "index"
	OpShow   Operation = "show"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpUp     Operation = "up"
	OpDown   Operation = "down"
)

// AllOperations allows every operation when it is the first allow-list entry.
const AllOperations = "*"

// Operations lists every operation in handler order.
var Operations = []Operation{OpIndex, OpShow, OpCreate, OpUpdate, OpDelete, OpUp, OpDown}

// ParseOperation finds the operation called name, ignoring case.
func ParseOperation(name string) (Operation, bool) {
	for _, op := range Operations {
		if strings.EqualFold(string(op), name) {
			return op, true
		}
	}
	return "", false
}

// isAllowed reports whether op is in allowed. A leading "*" allows everything.
func isAllowed(allowed []string, op Operation) bool {
	if len(allowed) > 0 && allowed[0] == AllOperations {
		return true
	}

	for _, name := range allowed {
		if strings.EqualFold(name, string(op)) {
			return true
		}
	}
	return false
}
