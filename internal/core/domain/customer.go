package domain

import (
	"strconv"
	"strings"
	"time"
)

// Tier is a coarse customer classification driving response priority.
type Tier string

const (
	TierStandard Tier = "standard"
	TierValued   Tier = "valued"
	TierVIP      Tier = "vip"
)

// RiskLevel reflects dissatisfaction signals from helpdesk history.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ResponseTime is the suggested handling urgency for a conversation.
type ResponseTime string

const (
	ResponseStandard ResponseTime = "standard"
	ResponsePriority ResponseTime = "priority"
	ResponseUrgent   ResponseTime = "urgent"
)

// Suggested action types, appended in a fixed order when their conditions hold.
const (
	ActionOrderStatus            = "order_status"
	ActionShippingUpdate         = "shipping_update"
	ActionVIPTreatment           = "vip_treatment"
	ActionEscalateManager        = "escalate_manager"
	ActionProductRecommendations = "product_recommendations"
)

// CommerceCustomer mirrors the commerce provider's customer record.
// TotalSpent arrives as a decimal string on the wire.
type CommerceCustomer struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	TotalSpent  string `json:"total_spent"`
	OrdersCount int    `json:"orders_count"`
}

// SpentTotal parses the wire-format spend amount. Unparseable values count
// as zero, matching the provider's own handling of missing spend.
func (c *CommerceCustomer) SpentTotal() float64 {
	v, err := strconv.ParseFloat(c.TotalSpent, 64)
	if err != nil {
		return 0
	}
	return v
}

// DisplayName joins the customer's name parts for agent-facing output.
func (c *CommerceCustomer) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Email
	}
	return name
}

// Order is a commerce order, newest first in CommerceData.Orders.
type Order struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	TotalPrice        string     `json:"total_price"`
	FulfillmentStatus string     `json:"fulfillment_status,omitempty"`
	FinancialStatus   string     `json:"financial_status,omitempty"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// DisplayStatus derives a human-readable order status.
// Checked in this exact precedence order; first match wins.
func (o Order) DisplayStatus() string {
	switch {
	case o.CancelledAt != nil:
		return "Cancelled"
	case o.FulfillmentStatus == "fulfilled":
		return "Delivered"
	case o.FinancialStatus == "pending":
		return "Payment Processing"
	case o.FinancialStatus == "paid" && o.FulfillmentStatus == "":
		return "Processing"
	case o.FulfillmentStatus == "partial":
		return "Partially Shipped"
	case o.FulfillmentStatus == "shipped":
		return "Shipped"
	default:
		return "Processing"
	}
}

// CommerceData is the raw commerce slice of a customer context.
type CommerceData struct {
	Customer *CommerceCustomer `json:"customer,omitempty"`
	Orders   []Order           `json:"orders,omitempty"`
}

// HelpdeskCustomer mirrors the helpdesk provider's customer record.
type HelpdeskCustomer struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// HelpdeskInsights are the per-customer aggregates the helpdesk exposes.
// A nil SatisfactionScore means the customer has never been surveyed.
type HelpdeskInsights struct {
	SatisfactionScore  *float64   `json:"satisfaction_score,omitempty"`
	TotalConversations int        `json:"total_conversations"`
	LastContact        *time.Time `json:"last_contact,omitempty"`
	PreferredChannel   string     `json:"preferred_channel,omitempty"`
}

// Satisfaction returns the survey score, defaulting to 5 (neutral-positive)
// for never-surveyed customers so they are not flagged as at-risk.
func (h HelpdeskInsights) Satisfaction() float64 {
	if h.SatisfactionScore == nil {
		return 5
	}
	return *h.SatisfactionScore
}

// HelpdeskData is the raw helpdesk slice of a customer context.
type HelpdeskData struct {
	Customer *HelpdeskCustomer `json:"customer,omitempty"`
	Insights HelpdeskInsights  `json:"insights"`
}

// SuggestedAction is an agent-facing action descriptor.
type SuggestedAction struct {
	Type  string         `json:"type"`
	Label string         `json:"label"`
	Data  map[string]any `json:"data,omitempty"`
}

// Insights are the derived fields of a customer context. They are always
// present and recomputed whenever the commerce or helpdesk slice changes.
type Insights struct {
	CustomerTier     Tier              `json:"customer_tier"`
	RiskLevel        RiskLevel         `json:"risk_level"`
	PreferredChannel string            `json:"preferred_channel"`
	ResponseTime     ResponseTime      `json:"response_time"`
	SuggestedActions []SuggestedAction `json:"suggested_actions"`
}

// BaselineInsights returns the defaults used before any rule fires, and for
// customers with no commerce or helpdesk record.
func BaselineInsights() Insights {
	return Insights{
		CustomerTier:     TierStandard,
		RiskLevel:        RiskLow,
		PreferredChannel: "chat",
		ResponseTime:     ResponseStandard,
		SuggestedActions: []SuggestedAction{},
	}
}

// ComputeInsights derives insight fields from raw commerce and helpdesk data.
//
// Tier rules use exclusive comparisons and are evaluated vip-first. The
// helpdesk risk rule may upgrade ResponseTime to urgent even when the
// commerce rule already set priority; urgent always wins when both fire.
func ComputeInsights(commerce *CommerceData, helpdesk *HelpdeskData) Insights {
	ins := BaselineInsights()

	if commerce != nil && commerce.Customer != nil {
		spent := commerce.Customer.SpentTotal()
		orders := commerce.Customer.OrdersCount
		if spent > 1000 || orders > 10 {
			ins.CustomerTier = TierVIP
			ins.ResponseTime = ResponsePriority
		} else if spent > 500 || orders > 5 {
			ins.CustomerTier = TierValued
		}
	}

	if helpdesk != nil {
		satisfaction := helpdesk.Insights.Satisfaction()
		if satisfaction < 3 && helpdesk.Insights.TotalConversations > 3 {
			ins.RiskLevel = RiskHigh
			ins.ResponseTime = ResponseUrgent
		} else if satisfaction < 4 {
			ins.RiskLevel = RiskMedium
		}
	}

	if commerce != nil && len(commerce.Orders) > 0 {
		latest := commerce.Orders[0]
		ins.SuggestedActions = append(ins.SuggestedActions, SuggestedAction{
			Type:  ActionOrderStatus,
			Label: "Check status of order " + latest.Name,
			Data:  map[string]any{"order_id": latest.ID, "order_name": latest.Name},
		})
		if latest.FulfillmentStatus != "fulfilled" {
			ins.SuggestedActions = append(ins.SuggestedActions, SuggestedAction{
				Type:  ActionShippingUpdate,
				Label: "Share shipping update for order " + latest.Name,
				Data:  map[string]any{"order_id": latest.ID, "order_name": latest.Name},
			})
		}
	}
	if ins.CustomerTier == TierVIP {
		ins.SuggestedActions = append(ins.SuggestedActions, SuggestedAction{
			Type:  ActionVIPTreatment,
			Label: "Apply VIP handling",
		})
	}
	if ins.RiskLevel == RiskHigh {
		ins.SuggestedActions = append(ins.SuggestedActions, SuggestedAction{
			Type:  ActionEscalateManager,
			Label: "Escalate to a manager",
		})
	}
	if commerce != nil && commerce.Customer != nil && len(commerce.Orders) > 0 {
		ins.SuggestedActions = append(ins.SuggestedActions, SuggestedAction{
			Type:  ActionProductRecommendations,
			Label: "Suggest related products",
			Data:  map[string]any{"customer_id": commerce.Customer.ID},
		})
	}

	return ins
}

// CustomerContext is the denormalized per-customer view served to the chat
// flow and the agent panel.
type CustomerContext struct {
	Email          string        `json:"email,omitempty"`
	ConversationID string        `json:"conversation_id,omitempty"`
	Commerce       *CommerceData `json:"commerce,omitempty"`
	Helpdesk       *HelpdeskData `json:"helpdesk,omitempty"`
	Insights       Insights      `json:"insights"`
	LastUpdated    time.Time     `json:"last_updated"`
}

// NewDefaultContext builds a baseline context with no provider data.
// Served when the external fetch fails; never cached.
func NewDefaultContext(email, conversationID string, now time.Time) *CustomerContext {
	return &CustomerContext{
		Email:          email,
		ConversationID: conversationID,
		Insights:       BaselineInsights(),
		LastUpdated:    now,
	}
}

// RecomputeInsights restores the invariant that Insights is consistent with
// the commerce and helpdesk slices.
func (c *CustomerContext) RecomputeInsights() {
	c.Insights = ComputeInsights(c.Commerce, c.Helpdesk)
}

// ContextUpdate carries a shallow merge for UpdateContext. Non-nil fields
// replace the corresponding context field; insights are then recomputed.
type ContextUpdate struct {
	Commerce *CommerceData `json:"commerce,omitempty"`
	Helpdesk *HelpdeskData `json:"helpdesk,omitempty"`
}

const (
	anonymousEmail = "anonymous"
	noConversation = "no_conv"
)

// ContextKey builds the cache key for a (email, conversationId) pair.
func ContextKey(email, conversationID string) string {
	if email == "" {
		email = anonymousEmail
	}
	if conversationID == "" {
		conversationID = noConversation
	}
	return email + "_" + conversationID
}

// ContextEntry is a cached customer context with its computation time.
type ContextEntry struct {
	Data      *CustomerContext `json:"data"`
	Timestamp time.Time        `json:"timestamp"`
}

// FreshAt reports whether the entry is inside the freshness window at now.
func (e *ContextEntry) FreshAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.Timestamp) < ttl
}

// OrderSummary is a display-ready order line for the agent panel.
type OrderSummary struct {
	Name      string    `json:"name"`
	Total     string    `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CommerceSummary is the commerce slice of a context summary.
type CommerceSummary struct {
	TotalSpent   string         `json:"total_spent"`
	OrderCount   int            `json:"order_count"`
	RecentOrders []OrderSummary `json:"recent_orders,omitempty"`
}

// HelpdeskSummary is the helpdesk slice of a context summary.
type HelpdeskSummary struct {
	Conversations    int        `json:"conversations"`
	Satisfaction     float64    `json:"satisfaction"`
	LastContact      *time.Time `json:"last_contact,omitempty"`
	PreferredChannel string     `json:"preferred_channel,omitempty"`
}

// ContextSummary is a pure display projection of a customer context.
type ContextSummary struct {
	Email            string            `json:"email,omitempty"`
	CustomerName     string            `json:"customer_name,omitempty"`
	Tier             Tier              `json:"tier"`
	Risk             RiskLevel         `json:"risk"`
	ResponseTime     ResponseTime      `json:"response_time"`
	Commerce         *CommerceSummary  `json:"commerce,omitempty"`
	Helpdesk         *HelpdeskSummary  `json:"helpdesk,omitempty"`
	SuggestedActions []SuggestedAction `json:"suggested_actions"`
	LastUpdated      time.Time         `json:"last_updated"`
}
