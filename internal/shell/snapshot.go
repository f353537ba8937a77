package shell

import (
	"github.com/khanglvm/marketing-support/internal/gateway"
	"github.com/khanglvm/marketing-support/internal/history"
)

// State is a read-only copy of the App state for renderers.
type State struct {
	Phase Phase  `json:"phase"`
	Error string `json:"error,omitempty"`

	Plan        *gateway.MarketingPlan `json:"plan,omitempty"`
	ProductLink string                 `json:"productLink,omitempty"`
	ImageURL    string                 `json:"imageUrl,omitempty"`
	HasSource   bool                   `json:"hasSourceImage"`

	VisualLoading bool   `json:"visualLoading"`
	Logo          string `json:"logo,omitempty"`
	LogoBrand     string `json:"logoBrand,omitempty"`
	LogoLoading   bool   `json:"logoLoading"`

	History  []history.Item `json:"history"`
	Email    string         `json:"email,omitempty"`
	Activity []string       `json:"activity"`
}

// Snapshot returns a copy of the current state.
func (a *App) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := State{
		Phase:         a.phase,
		ProductLink:   a.link,
		ImageURL:      a.image,
		HasSource:     a.source != nil,
		VisualLoading: a.visualJob != nil,
		Logo:          a.logo,
		LogoBrand:     a.logoBrand,
		LogoLoading:   a.logoJob != nil,
		History:       make([]history.Item, len(a.items)),
		Email:         a.email,
		Activity:      a.activity.snapshot(),
	}
	copy(s.History, a.items)
	if a.lastErr != nil {
		s.Error = a.lastErr.Error()
	}
	if a.plan != nil {
		plan := *a.plan
		s.Plan = &plan
	}
	return s
}
