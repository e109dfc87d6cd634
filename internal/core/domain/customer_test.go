package domain

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func TestComputeInsights_Tiers(t *testing.T) {
	tests := []struct {
		name       string
		spent      string
		orders     int
		wantTier   Tier
		wantTiming ResponseTime
	}{
		{"vip by spend", "1200.00", 2, TierVIP, ResponsePriority},
		{"vip by orders", "50.00", 11, TierVIP, ResponsePriority},
		{"valued by spend", "600.00", 1, TierValued, ResponseStandard},
		{"valued by orders", "100.00", 6, TierValued, ResponseStandard},
		{"standard", "100.00", 1, TierStandard, ResponseStandard},
		{"boundary spend not vip", "1000.00", 1, TierValued, ResponseStandard},
		{"boundary spend not valued", "500.00", 1, TierStandard, ResponseStandard},
		{"unparseable spend", "n/a", 1, TierStandard, ResponseStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := ComputeInsights(&CommerceData{
				Customer: &CommerceCustomer{TotalSpent: tt.spent, OrdersCount: tt.orders},
			}, nil)
			if ins.CustomerTier != tt.wantTier {
				t.Errorf("tier: expected %s, got %s", tt.wantTier, ins.CustomerTier)
			}
			if ins.ResponseTime != tt.wantTiming {
				t.Errorf("response time: expected %s, got %s", tt.wantTiming, ins.ResponseTime)
			}
		})
	}
}

func TestComputeInsights_Risk(t *testing.T) {
	tests := []struct {
		name          string
		satisfaction  *float64
		conversations int
		wantRisk      RiskLevel
		wantTiming    ResponseTime
	}{
		{"high risk", floatPtr(2), 5, RiskHigh, ResponseUrgent},
		{"low satisfaction few conversations", floatPtr(2), 3, RiskMedium, ResponseStandard},
		{"medium risk", floatPtr(3.5), 10, RiskMedium, ResponseStandard},
		{"no risk", floatPtr(4.8), 10, RiskLow, ResponseStandard},
		{"never surveyed", nil, 10, RiskLow, ResponseStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := ComputeInsights(nil, &HelpdeskData{
				Insights: HelpdeskInsights{
					SatisfactionScore:  tt.satisfaction,
					TotalConversations: tt.conversations,
				},
			})
			if ins.RiskLevel != tt.wantRisk {
				t.Errorf("risk: expected %s, got %s", tt.wantRisk, ins.RiskLevel)
			}
			if ins.ResponseTime != tt.wantTiming {
				t.Errorf("response time: expected %s, got %s", tt.wantTiming, ins.ResponseTime)
			}
		})
	}
}

func TestComputeInsights_UrgentOverridesPriority(t *testing.T) {
	ins := ComputeInsights(
		&CommerceData{Customer: &CommerceCustomer{TotalSpent: "2000.00", OrdersCount: 1}},
		&HelpdeskData{Insights: HelpdeskInsights{SatisfactionScore: floatPtr(2), TotalConversations: 5}},
	)
	if ins.CustomerTier != TierVIP {
		t.Errorf("expected vip tier, got %s", ins.CustomerTier)
	}
	if ins.ResponseTime != ResponseUrgent {
		t.Errorf("urgent must win over priority, got %s", ins.ResponseTime)
	}
}

func TestComputeInsights_SuggestedActions(t *testing.T) {
	commerce := &CommerceData{
		Customer: &CommerceCustomer{ID: 1, TotalSpent: "2000.00", OrdersCount: 1},
		Orders: []Order{
			{ID: 10, Name: "#1010", FulfillmentStatus: ""},
		},
	}
	helpdesk := &HelpdeskData{
		Insights: HelpdeskInsights{SatisfactionScore: floatPtr(2), TotalConversations: 5},
	}

	ins := ComputeInsights(commerce, helpdesk)
	var types []string
	for _, a := range ins.SuggestedActions {
		types = append(types, a.Type)
	}
	want := []string{
		ActionOrderStatus,
		ActionShippingUpdate,
		ActionVIPTreatment,
		ActionEscalateManager,
		ActionProductRecommendations,
	}
	if len(types) != len(want) {
		t.Fatalf("expected %d actions, got %v", len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("action %d: expected %s, got %s", i, want[i], types[i])
		}
	}
}

func TestComputeInsights_NoShippingActionWhenFulfilled(t *testing.T) {
	ins := ComputeInsights(&CommerceData{
		Customer: &CommerceCustomer{ID: 1, TotalSpent: "10.00"},
		Orders:   []Order{{ID: 10, Name: "#1010", FulfillmentStatus: "fulfilled"}},
	}, nil)

	for _, a := range ins.SuggestedActions {
		if a.Type == ActionShippingUpdate {
			t.Error("no shipping update action for a fulfilled order")
		}
	}
}

func TestComputeInsights_NilInputs(t *testing.T) {
	ins := ComputeInsights(nil, nil)
	if ins.CustomerTier != TierStandard || ins.RiskLevel != RiskLow || ins.ResponseTime != ResponseStandard {
		t.Errorf("expected baseline insights, got %+v", ins)
	}
	if ins.SuggestedActions == nil {
		t.Error("suggested actions must be an empty slice, not nil")
	}
	if len(ins.SuggestedActions) != 0 {
		t.Errorf("expected no actions, got %d", len(ins.SuggestedActions))
	}
}

func TestOrder_DisplayStatus(t *testing.T) {
	cancelled := time.Now()
	tests := []struct {
		name  string
		order Order
		want  string
	}{
		{"cancelled wins over fulfilled", Order{CancelledAt: &cancelled, FulfillmentStatus: "fulfilled"}, "Cancelled"},
		{"delivered", Order{FulfillmentStatus: "fulfilled"}, "Delivered"},
		{"payment processing", Order{FinancialStatus: "pending", FulfillmentStatus: "shipped"}, "Payment Processing"},
		{"processing paid", Order{FinancialStatus: "paid"}, "Processing"},
		{"partially shipped", Order{FulfillmentStatus: "partial"}, "Partially Shipped"},
		{"shipped", Order{FulfillmentStatus: "shipped"}, "Shipped"},
		{"default", Order{}, "Processing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.order.DisplayStatus(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCommerceCustomer_DisplayName(t *testing.T) {
	c := &CommerceCustomer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	if got := c.DisplayName(); got != "Ada Lovelace" {
		t.Errorf("expected full name, got %q", got)
	}

	c = &CommerceCustomer{Email: "ada@example.com"}
	if got := c.DisplayName(); got != "ada@example.com" {
		t.Errorf("expected email fallback, got %q", got)
	}

	c = &CommerceCustomer{FirstName: "Ada", Email: "ada@example.com"}
	if got := c.DisplayName(); got != "Ada" {
		t.Errorf("expected first name only, got %q", got)
	}
}

func TestHelpdeskInsights_SatisfactionDefault(t *testing.T) {
	if got := (HelpdeskInsights{}).Satisfaction(); got != 5 {
		t.Errorf("expected default satisfaction 5, got %f", got)
	}
	if got := (HelpdeskInsights{SatisfactionScore: floatPtr(2.5)}).Satisfaction(); got != 2.5 {
		t.Errorf("expected 2.5, got %f", got)
	}
}

func TestContextKey(t *testing.T) {
	tests := []struct {
		email, conv, want string
	}{
		{"ada@example.com", "conv-1", "ada@example.com_conv-1"},
		{"", "conv-1", "anonymous_conv-1"},
		{"ada@example.com", "", "ada@example.com_no_conv"},
		{"", "", "anonymous_no_conv"},
	}
	for _, tt := range tests {
		if got := ContextKey(tt.email, tt.conv); got != tt.want {
			t.Errorf("ContextKey(%q, %q): expected %q, got %q", tt.email, tt.conv, got, tt.want)
		}
	}
}

func TestContextEntry_FreshAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entry := &ContextEntry{Timestamp: now}
	ttl := 5 * time.Minute

	if !entry.FreshAt(now.Add(ttl-time.Second), ttl) {
		t.Error("entry inside the window must be fresh")
	}
	if entry.FreshAt(now.Add(ttl), ttl) {
		t.Error("entry exactly at the window edge must be stale")
	}
}

func TestRecomputeInsights(t *testing.T) {
	cc := &CustomerContext{
		Commerce: &CommerceData{Customer: &CommerceCustomer{TotalSpent: "5000.00"}},
	}
	cc.RecomputeInsights()
	if cc.Insights.CustomerTier != TierVIP {
		t.Errorf("expected vip after recompute, got %s", cc.Insights.CustomerTier)
	}

	cc.Commerce = nil
	cc.RecomputeInsights()
	if cc.Insights.CustomerTier != TierStandard {
		t.Errorf("expected standard after dropping commerce data, got %s", cc.Insights.CustomerTier)
	}
}
