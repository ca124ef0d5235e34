// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package mockapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
)

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

type authRequest struct {
	Action       string `json:"action"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Email        string `json:"email"`
	Station      string `json:"station"`
	CaptchaToken string `json:"captcha_token"`
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var request authRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	request.Username = strings.TrimSpace(request.Username)
	request.Password = strings.TrimSpace(request.Password)

	if request.Username == "" || request.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch request.Action {
	case "login":
		s.login(w, request)
	case "register":
		s.register(w, request)
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}

func (s *Server) login(w http.ResponseWriter, request authRequest) {
	user := s.userByName(request.Username)
	if user == nil || user.passwordHash != hashPassword(request.Password) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if user.banned {
		writeError(w, http.StatusForbidden, "account is banned")
		return
	}

	user.lastLogin = s.now()
	user.totalLogins++

	s.logger.Info("login", "username", user.username, "role", user.role)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    userPayload(user),
		"token":   tokenFor(user),
	})
}

func (s *Server) register(w http.ResponseWriter, request authRequest) {
	request.Email = strings.TrimSpace(request.Email)
	request.Station = strings.TrimSpace(request.Station)
	request.CaptchaToken = strings.TrimSpace(request.CaptchaToken)

	if request.Email == "" || request.Station == "" {
		writeError(w, http.StatusBadRequest, "email and station are required")
		return
	}
	if request.CaptchaToken == "" {
		writeError(w, http.StatusBadRequest, "captcha verification required")
		return
	}

	captcha := s.captchas[request.CaptchaToken]
	switch {
	case captcha == nil:
		writeError(w, http.StatusBadRequest, "invalid captcha token")
		return
	case captcha.consumed:
		writeError(w, http.StatusBadRequest, "captcha already used")
		return
	case s.now().After(captcha.expiresAt):
		writeError(w, http.StatusBadRequest, "captcha expired")
		return
	case !captcha.verified:
		writeError(w, http.StatusBadRequest, "captcha not verified")
		return
	}
	captcha.consumed = true

	for _, existing := range s.users {
		if existing.username == request.Username || existing.email == request.Email {
			writeError(w, http.StatusConflict, "username or email already registered")
			return
		}
	}

	user := s.addUser(request.Username, request.Email, request.Password, "user", request.Station)
	user.lastLogin = s.now()
	user.totalLogins = 1

	s.logger.Info("registered", "username", user.username, "station", user.station)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    userPayload(user),
		"token":   tokenFor(user),
	})
}
