package domain

// ChatRequest is an inbound end-user message.
type ChatRequest struct {
	Message        string `json:"message"`
	Email          string `json:"email,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatReply is the combined output of the knowledge and context engines:
// the user-visible message plus the agent-facing context summary.
type ChatReply struct {
	Message          string          `json:"message"`
	Confidence       float64         `json:"confidence"`
	Source           string          `json:"source,omitempty"`
	KnowledgeUsed    bool            `json:"knowledge_used"`
	KnowledgeSources []string        `json:"knowledge_sources,omitempty"`
	ShouldEscalate   bool            `json:"should_escalate"`
	Context          *ContextSummary `json:"context,omitempty"`
}
