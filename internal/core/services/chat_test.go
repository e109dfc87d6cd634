package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/parley-labs/parley-core/internal/core/domain"
	"github.com/parley-labs/parley-core/internal/core/ports/driven/mocks"
)

type chatFixture struct {
	svc      *chatService
	commerce *mocks.MockCommerceFetcher
	helpdesk *mocks.MockHelpdeskFetcher
	docs     *mocks.MockKnowledgeStore
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	f := &chatFixture{
		commerce: mocks.NewMockCommerceFetcher(),
		helpdesk: mocks.NewMockHelpdeskFetcher(),
		docs:     mocks.NewMockKnowledgeStore(),
	}
	contexts := NewContextService(ContextServiceConfig{
		Commerce: f.commerce,
		Helpdesk: f.helpdesk,
		Store:    mocks.NewMockContextStore(),
	})
	f.svc = NewChatService(NewKnowledgeService(), contexts, f.docs, nil).(*chatService)
	return f
}

func (f *chatFixture) seedDoc(t *testing.T) {
	t.Helper()
	err := f.docs.Save(context.Background(), &domain.KnowledgeDocument{
		ID:       "doc-1",
		TenantID: "tenant-1",
		Name:     "Shipping",
		Content:  "We ship orders within 2 business days via UPS.",
		Enabled:  true,
	})
	if err != nil {
		t.Fatalf("seed document: %v", err)
	}
}

func TestChatService_HandleMessage_AnswersFromKnowledge(t *testing.T) {
	f := newChatFixture(t)
	f.seedDoc(t)

	reply, err := f.svc.HandleMessage(context.Background(), "tenant-1", domain.ChatRequest{
		Message: "how long does shipping take",
		Email:   "ada@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reply.KnowledgeUsed {
		t.Error("expected a knowledge-backed reply")
	}
	if reply.ShouldEscalate {
		t.Error("expected no escalation for a matched low-risk message")
	}
	if reply.Context == nil {
		t.Error("expected a context summary on the reply")
	}
}

func TestChatService_HandleMessage_EmptyMessage(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.HandleMessage(context.Background(), "tenant-1", domain.ChatRequest{Message: "   "})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestChatService_HandleMessage_HighRiskForcesEscalation(t *testing.T) {
	f := newChatFixture(t)
	f.seedDoc(t)
	sat := 2.0
	f.helpdesk.Data = &domain.HelpdeskData{
		Insights: domain.HelpdeskInsights{
			SatisfactionScore:  &sat,
			TotalConversations: 5,
		},
	}

	reply, err := f.svc.HandleMessage(context.Background(), "tenant-1", domain.ChatRequest{
		Message: "how long does shipping take",
		Email:   "angry@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reply.KnowledgeUsed {
		t.Error("expected the knowledge answer to still be served")
	}
	if !reply.ShouldEscalate {
		t.Error("expected high-risk customer to force escalation")
	}
	if reply.Context.Risk != domain.RiskHigh {
		t.Errorf("expected high risk in summary, got %s", reply.Context.Risk)
	}
}

func TestChatService_HandleMessage_StoreFailureFallsBack(t *testing.T) {
	f := newChatFixture(t)
	f.docs.ListErr = errors.New("database down")

	reply, err := f.svc.HandleMessage(context.Background(), "tenant-1", domain.ChatRequest{
		Message: "what is your refund policy",
		Email:   "ada@example.com",
	})
	if err != nil {
		t.Fatalf("a broken store must not fail the chat, got %v", err)
	}
	if reply.KnowledgeUsed {
		t.Error("expected the honest fallback with no reachable documents")
	}
	if !reply.ShouldEscalate {
		t.Error("expected escalation for a specific unanswerable question")
	}
}

func TestChatService_HandleMessage_TenantIsolation(t *testing.T) {
	f := newChatFixture(t)
	f.seedDoc(t)

	reply, err := f.svc.HandleMessage(context.Background(), "tenant-2", domain.ChatRequest{
		Message: "how long does shipping take",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.KnowledgeUsed {
		t.Error("tenant-2 must not see tenant-1 documents")
	}
}

func TestChatService_HandleMessage_VIPContextInSummary(t *testing.T) {
	f := newChatFixture(t)
	f.seedDoc(t)
	f.commerce.Data = &domain.CommerceData{
		Customer: &domain.CommerceCustomer{
			ID:          1,
			Email:       "vip@example.com",
			TotalSpent:  "5000.00",
			OrdersCount: 12,
		},
		Orders: []domain.Order{
			{ID: 9, Name: "#1009", TotalPrice: "300.00", FulfillmentStatus: "shipped", CreatedAt: time.Now()},
		},
	}

	reply, err := f.svc.HandleMessage(context.Background(), "tenant-1", domain.ChatRequest{
		Message: "how long does shipping take",
		Email:   "vip@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Context.Tier != domain.TierVIP {
		t.Errorf("expected vip tier in summary, got %s", reply.Context.Tier)
	}
	if reply.Context.ResponseTime != domain.ResponsePriority {
		t.Errorf("expected priority response time, got %s", reply.Context.ResponseTime)
	}
}
