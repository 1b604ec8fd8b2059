package tools

import (
	"github.com/quilicura/micondominio/ai/llm"
)

// Registry is the closed tool catalog handed to the dispatcher. It is built
// once at startup and never mutated afterwards; execute functions live in a
// separate map keyed by action identifier so the model can never reach a
// write path directly.
type Registry struct {
	order     []string
	tools     map[string]Tool
	executors map[string]ExecuteFunc
}

// NewRegistry builds the full catalog over the given store.
func NewRegistry(s DomainStore) *Registry {
	r := &Registry{
		tools:     map[string]Tool{},
		executors: map[string]ExecuteFunc{},
	}

	for _, t := range []Tool{
		// Query tools.
		&ListOpenIncidentsTool{store: s},
		&SearchIncidentsTool{store: s},
		&ListIncidentsDetailedTool{store: s},
		&RecommendIncidentSolutionTool{store: s},
		&DashboardStatsTool{store: s},
		&IncidentTrendsTool{store: s},
		&CondominiumIncidentStatsTool{store: s},
		&RecentSanctionsTool{store: s},
		&ListCondominiumsTool{store: s},
		&ListCondominiumsByRegionTool{store: s},
		&FindCondominiumTool{store: s},
		&ListCategoriesTool{store: s},
		&FindCategoryTool{store: s},
		&FindUserTool{store: s},

		// Propose tools.
		&ProposeCreateCondominiumTool{store: s},
		&ProposeCreateUserTool{store: s},
		&ProposeCreateMeetingTool{store: s},
		&ProposeCreateIncidentTool{store: s},
		&ProposeCreateCategoryTool{store: s},
		&ProposeCreateSanctionTool{store: s},
		&ProposeCreateLogEntryTool{store: s},
	} {
		r.order = append(r.order, t.Name())
		r.tools[t.Name()] = t
	}

	r.executors = map[string]ExecuteFunc{
		ActionCreateCondominium: executeCreateCondominium(s),
		ActionCreateUser:        executeCreateUser(s),
		ActionCreateMeeting:     executeCreateMeeting(s),
		ActionCreateIncident:    executeCreateIncident(s),
		ActionCreateCategory:    executeCreateCategory(s),
		ActionCreateSanction:    executeCreateSanction(s),
		ActionCreateLogEntry:    executeCreateLogEntry(s),
	}

	return r
}

// Descriptors returns the wire contract exposed to the model, in catalog order.
func (r *Registry) Descriptors() []llm.ToolDescriptor {
	descriptors := make([]llm.ToolDescriptor, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		descriptors = append(descriptors, llm.ToolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return descriptors
}

// Get returns the named tool.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Executor returns the execute function for an action identifier.
func (r *Registry) Executor(action string) (ExecuteFunc, bool) {
	fn, ok := r.executors[action]
	return fn, ok
}

// Names returns the catalog's tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
