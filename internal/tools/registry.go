package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jeanpaul/swarm/internal/provider"
	"github.com/jeanpaul/swarm/internal/schema"
)

type Registry struct {
	tools     map[string]Tool
	validator *schema.Validator
}

func NewRegistry(validator *schema.Validator) *Registry {
	if validator == nil {
		validator = schema.NewValidator()
	}
	return &Registry{tools: make(map[string]Tool), validator: validator}
}

func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToolDefs describes every tool to the model, sorted by name.
func (r *Registry) ToolDefs() []provider.ToolDef {
	defs := make([]provider.ToolDef, 0, len(r.tools))
	for _, name := range r.Names() {
		t := r.tools[name]
		defs = append(defs, provider.ToolDef{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// Execute validates args against the tool's schema and runs it. Unknown
// tools and invalid arguments come back as tool errors so the model can
// correct itself.
func (r *Registry) Execute(ctx context.Context, name, args string) (Result, error) {
	t, ok := r.tools[name]
	if !ok {
		return Result{Error: fmt.Sprintf("unknown tool: %s", name)}, nil
	}
	if strings.TrimSpace(args) == "" {
		args = "{}"
	}
	if err := r.validator.Validate(t.Parameters(), args); err != nil {
		return Result{Error: "invalid arguments: " + err.Error()}, nil
	}
	return t.Execute(ctx, args)
}

// RegisterFileTools registers the read-only file tools rooted at root.
func RegisterFileTools(r *Registry, root string) {
	r.Register(&FileReadTool{Root: root})
	r.Register(&FileSearchTool{Root: root})
	r.Register(&FileListTool{Root: root})
}
