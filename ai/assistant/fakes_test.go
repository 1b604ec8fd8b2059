package assistant

import (
	"context"
	"fmt"

	"github.com/quilicura/micondominio/ai/llm"
	"github.com/quilicura/micondominio/store"
)

// fakeGateway replays a scripted sequence of responses and records every call.
type fakeGateway struct {
	script []scriptedResponse
	calls  []gatewayCall
}

type scriptedResponse struct {
	response *llm.ChatResponse
	err      error
}

type gatewayCall struct {
	messages   []llm.Message
	toolChoice llm.ToolChoice
}

func (g *fakeGateway) Chat(_ context.Context, _ []llm.Message) (string, *llm.LLMCallStats, error) {
	return "", nil, fmt.Errorf("not scripted")
}

func (g *fakeGateway) ChatWithTools(_ context.Context, messages []llm.Message, _ []llm.ToolDescriptor, toolChoice llm.ToolChoice) (*llm.ChatResponse, *llm.LLMCallStats, error) {
	g.calls = append(g.calls, gatewayCall{messages: messages, toolChoice: toolChoice})
	if len(g.script) == 0 {
		return nil, nil, fmt.Errorf("gateway called more times than scripted")
	}
	next := g.script[0]
	g.script = g.script[1:]
	if next.err != nil {
		return nil, nil, next.err
	}
	return next.response, &llm.LLMCallStats{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}, nil
}

func (g *fakeGateway) Warmup(_ context.Context) {}

func textResponse(content string) scriptedResponse {
	return scriptedResponse{response: &llm.ChatResponse{Content: content}}
}

func toolCallResponse(name, arguments string) scriptedResponse {
	return toolCallBatchResponse(namedToolCall("call_1", name, arguments))
}

func toolCallBatchResponse(calls ...llm.ToolCall) scriptedResponse {
	return scriptedResponse{response: &llm.ChatResponse{ToolCalls: calls}}
}

func namedToolCall(id, name, arguments string) llm.ToolCall {
	return llm.ToolCall{
		ID:       id,
		Type:     "function",
		Function: llm.FunctionCall{Name: name, Arguments: arguments},
	}
}

// memSessionStore is an in-memory SessionStore.
type memSessionStore struct {
	sessions []*store.ChatSession
	messages []*store.ChatMessage
	nextID   int32
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{nextID: 1}
}

func (m *memSessionStore) id() int32 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *memSessionStore) CreateChatSession(_ context.Context, create *store.ChatSession) (*store.ChatSession, error) {
	create.ID = m.id()
	m.sessions = append(m.sessions, create)
	return create, nil
}

func (m *memSessionStore) ListChatSessions(_ context.Context, find *store.FindChatSession) ([]*store.ChatSession, error) {
	list := []*store.ChatSession{}
	for _, s := range m.sessions {
		if find.ID != nil && s.ID != *find.ID {
			continue
		}
		if find.UID != nil && s.UID != *find.UID {
			continue
		}
		if find.UserID != nil && s.UserID != *find.UserID {
			continue
		}
		if find.Active != nil && s.Active != *find.Active {
			continue
		}
		list = append(list, s)
	}
	return list, nil
}

func (m *memSessionStore) UpdateChatSession(_ context.Context, update *store.UpdateChatSession) (*store.ChatSession, error) {
	for _, s := range m.sessions {
		if s.ID != update.ID {
			continue
		}
		if update.Title != nil {
			s.Title = *update.Title
		}
		if update.Active != nil {
			s.Active = *update.Active
		}
		if update.UpdatedTs != nil {
			s.UpdatedTs = *update.UpdatedTs
		}
		return s, nil
	}
	return nil, fmt.Errorf("chat_session not found")
}

func (m *memSessionStore) CreateChatMessage(_ context.Context, create *store.ChatMessage) (*store.ChatMessage, error) {
	create.ID = m.id()
	m.messages = append(m.messages, create)
	return create, nil
}

func (m *memSessionStore) ListChatMessages(_ context.Context, find *store.FindChatMessage) ([]*store.ChatMessage, error) {
	list := []*store.ChatMessage{}
	for _, message := range m.messages {
		if find.SessionID != nil && message.SessionID != *find.SessionID {
			continue
		}
		if find.Role != nil && message.Role != *find.Role {
			continue
		}
		list = append(list, message)
	}
	return list, nil
}

// domainStoreStub backs the tool registry in dispatcher tests. Only incident
// categories are functional; everything else answers empty.
type domainStoreStub struct {
	categories        []*store.IncidentCategory
	nextID            int32
	writes            int
	listCategoryCalls int
}

func (d *domainStoreStub) ListRegions(_ context.Context, _ *store.FindRegion) ([]*store.Region, error) {
	return nil, nil
}

func (d *domainStoreStub) ListCommunes(_ context.Context, _ *store.FindCommune) ([]*store.Commune, error) {
	return nil, nil
}

func (d *domainStoreStub) CreateCondominium(_ context.Context, _ *store.Condominium) (*store.Condominium, error) {
	return nil, fmt.Errorf("not supported")
}

func (d *domainStoreStub) ListCondominiums(_ context.Context, _ *store.FindCondominium) ([]*store.Condominium, error) {
	return nil, nil
}

func (d *domainStoreStub) CreateUser(_ context.Context, _ *store.User) (*store.User, error) {
	return nil, fmt.Errorf("not supported")
}

func (d *domainStoreStub) ListUsers(_ context.Context, _ *store.FindUser) ([]*store.User, error) {
	return nil, nil
}

func (d *domainStoreStub) CreateIncidentCategory(_ context.Context, create *store.IncidentCategory) (*store.IncidentCategory, error) {
	d.nextID++
	create.ID = d.nextID
	d.writes++
	d.categories = append(d.categories, create)
	return create, nil
}

func (d *domainStoreStub) ListIncidentCategories(_ context.Context, find *store.FindIncidentCategory) ([]*store.IncidentCategory, error) {
	d.listCategoryCalls++
	list := []*store.IncidentCategory{}
	for _, c := range d.categories {
		if find.NameEqual != nil && c.Name != *find.NameEqual {
			continue
		}
		list = append(list, c)
	}
	return list, nil
}

func (d *domainStoreStub) CreateIncident(_ context.Context, _ *store.Incident) (*store.Incident, error) {
	return nil, fmt.Errorf("not supported")
}

func (d *domainStoreStub) ListIncidents(_ context.Context, _ *store.FindIncident) ([]*store.Incident, error) {
	return nil, nil
}

func (d *domainStoreStub) CreateIncidentLog(_ context.Context, _ *store.IncidentLog) (*store.IncidentLog, error) {
	return nil, fmt.Errorf("not supported")
}

func (d *domainStoreStub) ListIncidentLogs(_ context.Context, _ *store.FindIncidentLog) ([]*store.IncidentLog, error) {
	return nil, nil
}

func (d *domainStoreStub) CreateSanction(_ context.Context, _ *store.Sanction) (*store.Sanction, error) {
	return nil, fmt.Errorf("not supported")
}

func (d *domainStoreStub) ListSanctions(_ context.Context, _ *store.FindSanction) ([]*store.Sanction, error) {
	return nil, nil
}

func (d *domainStoreStub) CreateMeeting(_ context.Context, _ *store.Meeting) (*store.Meeting, error) {
	return nil, fmt.Errorf("not supported")
}

func (d *domainStoreStub) ListMeetings(_ context.Context, _ *store.FindMeeting) ([]*store.Meeting, error) {
	return nil, nil
}
