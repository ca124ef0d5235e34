// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package helpdesk

// Role is a user's capability set, assigned by the server at
// registration and returned with every authenticated identity.
type Role string

const (
	// RoleUser is a regular end user: sees their own tickets only.
	RoleUser Role = "user"
	// RoleModerator sees all tickets, can report messages, and has
	// access to the statistics panel.
	RoleModerator Role = "moderator"
)

// TicketStatus is the server-assigned lifecycle state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusClosed     TicketStatus = "closed"
)

// TicketPriority is the urgency band of a ticket. New tickets are
// created with PriorityMedium; the server may reclassify.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// User is a server-issued identity.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	Station      string `json:"station"`
	AvatarURL    string `json:"avatar_url"`
	WarningCount int    `json:"warning_count"`
}

// UserSummary is the abbreviated owner identity embedded in tickets.
type UserSummary struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Station   string `json:"station"`
	AvatarURL string `json:"avatar_url"`
}

// Ticket is a single support case. Status and priority are closed
// enumerations; timestamps are RFC 3339 strings as sent by the server
// (the client displays them, it never does timestamp arithmetic).
type Ticket struct {
	ID            int            `json:"id"`
	Title         string         `json:"title"`
	Status        TicketStatus   `json:"status"`
	Priority      TicketPriority `json:"priority"`
	Category      string         `json:"category"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
	User          UserSummary    `json:"user"`
	MessageCount  int            `json:"message_count"`
	LastMessageAt string         `json:"last_message_at,omitempty"`
}

// Sender is the abbreviated identity attached to each message.
type Sender struct {
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	Station   string `json:"station"`
	AvatarURL string `json:"avatar_url"`
}

// Message is a single chat message within a ticket. Ordering is
// server-assigned (creation order); the client never reorders.
type Message struct {
	ID            int    `json:"id"`
	Content       string `json:"content"`
	MessageType   string `json:"message_type"`
	AttachmentURL string `json:"attachment_url,omitempty"`
	CreatedAt     string `json:"created_at"`
	EditedAt      string `json:"edited_at,omitempty"`
	IsFlagged     bool   `json:"is_flagged"`
	Sender        Sender `json:"sender"`
}

// CaptchaChallenge is a short-lived, single-use human-verification
// puzzle. Image is a multi-line ASCII rendering of the code; ExpiresIn
// is the remaining lifetime in seconds at issue time. The session token
// is echoed back at verification and again at registration.
type CaptchaChallenge struct {
	SessionToken string `json:"session_token"`
	Image        string `json:"captcha_image"`
	ExpiresIn    int    `json:"expires_in"`
}

// ModStats is a moderator's personal performance aggregate, recomputed
// server-side. ResponseTimeAvg is in minutes.
type ModStats struct {
	TicketsClosed   int     `json:"total_tickets_closed"`
	AverageRating   float64 `json:"average_rating"`
	TotalReviews    int     `json:"total_reviews"`
	ResponseTimeAvg int     `json:"response_time_avg"`
	LastActive      string  `json:"last_active,omitempty"`
}

// TopModerator is one row of the cross-moderator leaderboard. The
// server sorts the board; the client renders it in received order.
type TopModerator struct {
	Username      string  `json:"username"`
	Station       string  `json:"station"`
	TicketsClosed int     `json:"total_tickets_closed"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// SystemStats is the system-wide counter block shown on the statistics
// panel. UserSatisfaction is a percentage (0-100).
type SystemStats struct {
	TotalTickets        int     `json:"total_tickets"`
	OpenTickets         int     `json:"open_tickets"`
	ClosedToday         int     `json:"closed_today"`
	AverageResponseTime int     `json:"average_response_time"`
	UserSatisfaction    float64 `json:"user_satisfaction"`
}

// StatsReport bundles the three read-only aggregates returned by the
// moderator stats endpoint in a single call.
type StatsReport struct {
	Stats         ModStats       `json:"stats"`
	TopModerators []TopModerator `json:"top_moderators"`
	System        SystemStats    `json:"system_stats"`
}

// ReportResult is the outcome of flagging a message. UserBanned is a
// server-determined, opaque decision — the client surfaces it verbatim
// and never infers ban logic locally.
type ReportResult struct {
	ReportID     int  `json:"report_id"`
	WarningCount int  `json:"warning_count"`
	UserBanned   bool `json:"user_banned"`
}
