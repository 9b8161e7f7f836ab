package models

import "time"

// Status is the moderation state of a message.
type Status string

const (
	// StatusPending is the initial state of every submitted message.
	StatusPending Status = "pending"

	// StatusApproved marks a message cleared for display. An approved
	// message always carries a DisplayUntil timestamp.
	StatusApproved Status = "approved"

	// StatusRejected marks a message refused by a moderator.
	StatusRejected Status = "rejected"

	// StatusExpired is informational bookkeeping for messages whose
	// display window has passed. The service never writes it; expiry is
	// derived at query time from DisplayUntil.
	StatusExpired Status = "expired"
)

// Known reports whether s is one of the recognized status values.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// Message is a wall entry submitted by an anonymous visitor.
//
// DisplayUntil is present if and only if Status is approved: the moderation
// path sets it on approval (now + display duration) and clears it on every
// transition away from approved.
type Message struct {
	ID           int64      `json:"id"`
	Text         string     `json:"text"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	DisplayUntil *time.Time `json:"display_until,omitempty"`
}

// Displayable reports whether the message is eligible for the screen at the
// given instant.
func (m *Message) Displayable(now time.Time) bool {
	return m.Status == StatusApproved && m.DisplayUntil != nil && m.DisplayUntil.After(now)
}
