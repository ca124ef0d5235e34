// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

// Package mockapi is an in-memory implementation of the Coldfire
// support API for local development and tests. It serves the same five
// endpoints as the production deployment (auth, captcha, tickets,
// messages, moderator stats) with the same wire shapes and the same
// moderation rules: sha256 password hashes, single-use captchas with a
// ten-minute expiry, role-scoped ticket listings, the 1000-character
// message cap, and the automatic ban at three warnings.
//
// The server starts with seeded fixtures — a regular user
// (newbie_stalker / metro2033) and a moderator (artyom_spartan /
// metro2033) with leaderboard history — so a client pointed at it can
// exercise every flow without prior setup.
package mockapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Server holds all mock state in memory behind one mutex. Handlers are
// safe for concurrent use; nothing survives process exit.
type Server struct {
	logger *slog.Logger

	// now is replaceable in tests to control captcha expiry and
	// timestamps.
	now func() time.Time

	mu            sync.Mutex
	users         []*userRecord
	tickets       []*ticketRecord
	messages      []*messageRecord
	captchas      map[string]*captchaRecord
	modStats      map[int]*moderatorStatsRecord
	nextUserID    int
	nextTicketID  int
	nextMessageID int
	nextReportID  int
	captchaSerial int
}

type userRecord struct {
	id           int
	username     string
	email        string
	passwordHash string
	role         string
	station      string
	avatarURL    string
	warningCount int
	banned       bool
	totalLogins  int
	lastLogin    time.Time
}

type ticketRecord struct {
	id          int
	title       string
	status      string
	priority    string
	category    string
	userID      int
	moderatorID int
	createdAt   time.Time
	updatedAt   time.Time
	closedAt    time.Time
}

type messageRecord struct {
	id            int
	ticketID      int
	senderID      int
	content       string
	messageType   string
	attachmentURL string
	createdAt     time.Time
	editedAt      time.Time
	flagged       bool
	flagReason    string
}

// captchaRecord tracks a challenge through its lifecycle: issued, then
// verified by a correct answer, then consumed by a registration. Both
// transitions are single-shot — a wrong answer or a completed
// registration burns the token.
type captchaRecord struct {
	token     string
	text      string
	createdAt time.Time
	expiresAt time.Time
	verified  bool
	consumed  bool
}

type moderatorStatsRecord struct {
	ticketsClosed   int
	averageRating   float64
	totalReviews    int
	responseTimeAvg int
	lastActive      time.Time
}

// New returns a Server with seeded fixtures. Pass nil to use the
// default logger.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	server := &Server{
		logger:        logger,
		now:           time.Now,
		captchas:      make(map[string]*captchaRecord),
		modStats:      make(map[int]*moderatorStatsRecord),
		nextUserID:    1,
		nextTicketID:  1,
		nextMessageID: 1,
		nextReportID:  1,
	}
	server.seed()
	return server
}

// Handler returns the HTTP handler serving the five API endpoints
// under the paths that EndpointsFromBase derives.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", s.handleAuth)
	mux.HandleFunc("/captcha", s.handleCaptcha)
	mux.HandleFunc("/tickets", s.handleTickets)
	mux.HandleFunc("/messages", s.handleMessages)
	mux.HandleFunc("/moderator-stats", s.handleModeratorStats)
	return mux
}

// SetNow replaces the server's clock. Tests use it to step past the
// captcha expiry without sleeping.
func (s *Server) SetNow(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// CaptchaAnswer returns the code for an outstanding challenge, or ""
// when the token is unknown. Exists so tests and local development can
// answer challenges without parsing the ASCII art.
func (s *Server) CaptchaAnswer(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if captcha := s.captchas[token]; captcha != nil {
		return captcha.text
	}
	return ""
}

// seed installs the demo accounts and a small ticket history. Called
// once from New with the zero state; no locking needed.
func (s *Server) seed() {
	now := s.now()

	stalker := s.addUser("newbie_stalker", "stalker@coldfire.net", "metro2033", "user", "ВДНХ")
	artyom := s.addUser("artyom_spartan", "artyom@coldfire.net", "metro2033", "moderator", "Полис")
	hunter := s.addUser("hunter_ranger", "hunter@coldfire.net", "metro2033", "moderator", "Спарта")

	s.modStats[artyom.id] = &moderatorStatsRecord{
		ticketsClosed:   63,
		averageRating:   4.7,
		totalReviews:    41,
		responseTimeAvg: 22,
		lastActive:      now,
	}
	s.modStats[hunter.id] = &moderatorStatsRecord{
		ticketsClosed:   38,
		averageRating:   4.2,
		totalReviews:    29,
		responseTimeAvg: 35,
		lastActive:      now.Add(-2 * time.Hour),
	}

	ticket := s.addTicket(stalker.id, "Radio dead past Rizhskaya", "general", "medium", now.Add(-40*time.Minute))
	s.addMessage(ticket.id, stalker.id, "The relay stopped answering two days ago. Anyone else on the line?", now.Add(-40*time.Minute))
	s.addMessage(ticket.id, artyom.id, "Checking the junction logs now. Stay off the southern tunnel until I confirm.", now.Add(-25*time.Minute))
	ticket.status = "in_progress"
	ticket.moderatorID = artyom.id
}

func (s *Server) addUser(username, email, password, role, station string) *userRecord {
	user := &userRecord{
		id:           s.nextUserID,
		username:     username,
		email:        email,
		passwordHash: hashPassword(password),
		role:         role,
		station:      station,
		avatarURL:    "/avatars/default.jpg",
	}
	s.nextUserID++
	s.users = append(s.users, user)
	return user
}

func (s *Server) addTicket(userID int, title, category, priority string, at time.Time) *ticketRecord {
	ticket := &ticketRecord{
		id:        s.nextTicketID,
		title:     title,
		status:    "open",
		priority:  priority,
		category:  category,
		userID:    userID,
		createdAt: at,
		updatedAt: at,
	}
	s.nextTicketID++
	s.tickets = append(s.tickets, ticket)
	return ticket
}

func (s *Server) addMessage(ticketID, senderID int, content string, at time.Time) *messageRecord {
	message := &messageRecord{
		id:          s.nextMessageID,
		ticketID:    ticketID,
		senderID:    senderID,
		content:     content,
		messageType: "text",
		createdAt:   at,
	}
	s.nextMessageID++
	s.messages = append(s.messages, message)
	return message
}

func (s *Server) userByID(id int) *userRecord {
	for _, user := range s.users {
		if user.id == id {
			return user
		}
	}
	return nil
}

func (s *Server) userByName(username string) *userRecord {
	for _, user := range s.users {
		if user.username == username {
			return user
		}
	}
	return nil
}

// authenticate resolves the caller from the X-User-Id and X-Auth-Token
// headers. Tokens are the deterministic token_<id>_<username> form the
// auth endpoint issues. Returns nil when the headers are absent or do
// not match a known account.
func (s *Server) authenticate(r *http.Request) *userRecord {
	userID, err := strconv.Atoi(r.Header.Get("X-User-Id"))
	if err != nil {
		return nil
	}
	user := s.userByID(userID)
	if user == nil {
		return nil
	}
	if r.Header.Get("X-Auth-Token") != tokenFor(user) {
		return nil
	}
	return user
}

func tokenFor(user *userRecord) string {
	return fmt.Sprintf("token_%d_%s", user.id, user.username)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}

func userPayload(user *userRecord) map[string]any {
	return map[string]any{
		"id":            user.id,
		"username":      user.username,
		"email":         user.email,
		"role":          user.role,
		"station":       user.station,
		"avatar_url":    user.avatarURL,
		"warning_count": user.warningCount,
	}
}

func isoTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
