package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// FocusContext is the KPI snapshot the dashboard sends for a focus
// suggestion.
type FocusContext struct {
	OpenTasks      int     `json:"open_tasks"`
	OverdueTasks   int     `json:"overdue_tasks"`
	DueToday       int     `json:"due_today"`
	UnpaidInvoices int     `json:"unpaid_invoices"`
	UnpaidTotal    float64 `json:"unpaid_total"`
	ActiveClients  int     `json:"active_clients"`
	OpenLeads      int     `json:"open_leads"`
}

// FocusSuggestion is the response shape for the Focus page.
type FocusSuggestion struct {
	Headline  string   `json:"headline"`
	Actions   []string `json:"actions"`
	Followups []string `json:"followups"`
}

// OverdueInvoiceContext describes one overdue invoice for the chaser.
type OverdueInvoiceContext struct {
	Number      string  `json:"number"`
	ClientName  string  `json:"client_name"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	DaysOverdue int     `json:"days_overdue"`
}

// ChaserContext is the payload for an invoice-chaser suggestion.
type ChaserContext struct {
	Invoices []OverdueInvoiceContext `json:"invoices"`
}

// ChaserSuggestion is the response shape for the invoice chaser.
type ChaserSuggestion struct {
	DueDays int      `json:"due_days"`
	Items   []string `json:"items"`
	Notes   string   `json:"notes"`
}

// DefaultFocusSuggestion is the fallback shape returned when the
// completion call fails or its content does not parse.
func DefaultFocusSuggestion() FocusSuggestion {
	return FocusSuggestion{
		Headline:  "Clear the most urgent work first.",
		Actions:   []string{"Finish tasks due today", "Chase overdue invoices", "Reply to new leads"},
		Followups: []string{"Review this week's schedule"},
	}
}

// DefaultChaserSuggestion is the invoice-chaser fallback shape.
func DefaultChaserSuggestion() ChaserSuggestion {
	return ChaserSuggestion{
		DueDays: 7,
		Items:   []string{"Send a friendly payment reminder"},
		Notes:   "Reminder drafted without AI assistance.",
	}
}

const focusSystemPrompt = "You are an assistant for a freelancer's admin dashboard. " +
	"Given workload KPIs as JSON, reply with JSON only: " +
	`{"headline": string, "actions": [string], "followups": [string]}.`

const chaserSystemPrompt = "You are an assistant drafting invoice payment reminders for a freelancer. " +
	"Given overdue invoices as JSON, reply with JSON only: " +
	`{"due_days": number, "items": [string], "notes": string}.`

// SuggestFocus asks for a focus suggestion. It never returns an error:
// any failure, upstream or parse, yields the default shape.
func (c *Client) SuggestFocus(ctx context.Context, focus FocusContext) FocusSuggestion {
	content, err := c.completeJSON(ctx, focusSystemPrompt, focus)
	if err != nil {
		log.Printf("Focus suggestion fell back to default: %v", err)
		return DefaultFocusSuggestion()
	}
	var out FocusSuggestion
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		log.Printf("Focus suggestion content did not parse, using default: %v", err)
		return DefaultFocusSuggestion()
	}
	return out
}

// SuggestChaser asks for invoice-chaser copy, with the same
// fall-back-on-anything contract as SuggestFocus.
func (c *Client) SuggestChaser(ctx context.Context, chaser ChaserContext) ChaserSuggestion {
	content, err := c.completeJSON(ctx, chaserSystemPrompt, chaser)
	if err != nil {
		log.Printf("Invoice chaser suggestion fell back to default: %v", err)
		return DefaultChaserSuggestion()
	}
	var out ChaserSuggestion
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		log.Printf("Invoice chaser content did not parse, using default: %v", err)
		return DefaultChaserSuggestion()
	}
	return out
}

func (c *Client) completeJSON(ctx context.Context, system string, payload interface{}) (string, error) {
	user, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal suggestion context: %w", err)
	}
	return c.Complete(ctx, system, string(user))
}
