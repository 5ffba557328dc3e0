package tools

import "context"

// Result is what the model sees. Error is set for failures the model can
// recover from; Execute's error return is reserved for the session itself.
type Result struct {
	Output string
	Error  string
}

type Tool interface {
	Name() string
	Description() string
	// Parameters is the JSON schema of the argument object.
	Parameters() map[string]any
	Execute(ctx context.Context, args string) (Result, error)
}
