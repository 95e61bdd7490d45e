package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Tool is one callable capability exposed to the agent.
type Tool interface {
	Name() string
	Description() string
	// Parameters is the JSON schema of the arguments object.
	Parameters() json.RawMessage
	Call(ctx context.Context, arguments string) (string, error)
}

// Func adapts a plain function into a Tool.
type Func struct {
	name        string
	description string
	parameters  json.RawMessage
	fn          func(ctx context.Context, arguments string) (string, error)
}

func NewFunc(name, description string, parameters json.RawMessage, fn func(ctx context.Context, arguments string) (string, error)) *Func {
	return &Func{name: name, description: description, parameters: parameters, fn: fn}
}

func (f *Func) Name() string                { return f.name }
func (f *Func) Description() string         { return f.description }
func (f *Func) Parameters() json.RawMessage { return f.parameters }

func (f *Func) Call(ctx context.Context, arguments string) (string, error) {
	return f.fn(ctx, arguments)
}

// Registry holds the tools available to one search by name.
type Registry struct {
	tools map[string]Tool
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, tool := range tools {
		if err := r.Register(tool); err != nil {
			panic(err.Error())
		}
	}
	return r
}

func (r *Registry) Register(tool Tool) error {
	name := tool.Name()
	if _, ok := r.tools[name]; ok {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = tool
	return nil
}

func (r *Registry) Lookup(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// All returns the registered tools in name order.
func (r *Registry) All() []Tool {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	all := make([]Tool, len(names))
	for i, name := range names {
		all[i] = r.tools[name]
	}
	return all
}
