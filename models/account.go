package models

// AccountContext identifies the requesting account for one booking flow.
// It is resolved once by the auth middleware and passed explicitly into the
// booking services instead of being read from ambient state.
type AccountContext struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email,omitempty"`
}
