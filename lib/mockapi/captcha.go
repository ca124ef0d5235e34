// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package mockapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

const (
	captchaLength = 5
	captchaTTL    = 10 * time.Minute
	captchaChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func (s *Server) handleCaptcha(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.generateCaptcha(w)
	case http.MethodPost:
		s.verifyCaptcha(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) generateCaptcha(w http.ResponseWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	// Expired challenges can never verify again; drop them instead of
	// letting the map grow for the life of the process.
	for token, captcha := range s.captchas {
		if now.After(captcha.expiresAt) {
			delete(s.captchas, token)
		}
	}

	text := make([]byte, captchaLength)
	for i := range text {
		text[i] = captchaChars[rand.Intn(len(captchaChars))]
	}

	s.captchaSerial++
	sum := sha256.Sum256(fmt.Appendf(nil, "%s_%s_%d", text, now.Format(time.RFC3339Nano), s.captchaSerial))
	token := hex.EncodeToString(sum[:])[:32]

	s.captchas[token] = &captchaRecord{
		token:     token,
		text:      string(text),
		createdAt: now,
		expiresAt: now.Add(captchaTTL),
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_token": token,
		"captcha_image": renderCaptchaImage(string(text)),
		"expires_in":    int(captchaTTL.Seconds()),
	})
}

func (s *Server) verifyCaptcha(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SessionToken string `json:"session_token"`
		CaptchaInput string `json:"captcha_input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	input := strings.ToUpper(strings.TrimSpace(request.CaptchaInput))
	if request.SessionToken == "" || input == "" {
		writeError(w, http.StatusBadRequest, "missing session_token or captcha_input")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	captcha := s.captchas[request.SessionToken]
	switch {
	case captcha == nil:
		writeError(w, http.StatusBadRequest, "invalid session token")
		return
	case captcha.verified || captcha.consumed:
		writeError(w, http.StatusBadRequest, "captcha already used")
		return
	case s.now().After(captcha.expiresAt):
		writeError(w, http.StatusBadRequest, "captcha expired")
		return
	case input != captcha.text:
		// A wrong answer burns the challenge; the client must load a
		// fresh one rather than retry.
		delete(s.captchas, request.SessionToken)
		writeError(w, http.StatusBadRequest, "incorrect captcha")
		return
	}

	captcha.verified = true
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":   true,
		"message": "captcha verified",
	})
}

// captchaFont maps each allowed character to five rows of block
// glyphs, matching the challenge art the production deployment serves.
var captchaFont = map[rune][5]string{
	'A': {"  █  ", " █ █ ", "█████", "█   █", "█   █"},
	'B': {"████ ", "█   █", "████ ", "█   █", "████ "},
	'C': {" ████", "█    ", "█    ", "█    ", " ████"},
	'D': {"████ ", "█   █", "█   █", "█   █", "████ "},
	'E': {"█████", "█    ", "███  ", "█    ", "█████"},
	'F': {"█████", "█    ", "███  ", "█    ", "█    "},
	'G': {" ████", "█    ", "█ ███", "█   █", " ████"},
	'H': {"█   █", "█   █", "█████", "█   █", "█   █"},
	'I': {"█████", "  █  ", "  █  ", "  █  ", "█████"},
	'J': {"█████", "    █", "    █", "█   █", " ████"},
	'K': {"█   █", "█  █ ", "███  ", "█  █ ", "█   █"},
	'L': {"█    ", "█    ", "█    ", "█    ", "█████"},
	'M': {"█   █", "██ ██", "█ █ █", "█   █", "█   █"},
	'N': {"█   █", "██  █", "█ █ █", "█  ██", "█   █"},
	'O': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'P': {"████ ", "█   █", "████ ", "█    ", "█    "},
	'Q': {" ███ ", "█   █", "█ █ █", "█  ██", " ████"},
	'R': {"████ ", "█   █", "████ ", "█  █ ", "█   █"},
	'S': {" ████", "█    ", " ███ ", "    █", "████ "},
	'T': {"█████", "  █  ", "  █  ", "  █  ", "  █  "},
	'U': {"█   █", "█   █", "█   █", "█   █", " ███ "},
	'V': {"█   █", "█   █", "█   █", " █ █ ", "  █  "},
	'W': {"█   █", "█   █", "█ █ █", "██ ██", "█   █"},
	'X': {"█   █", " █ █ ", "  █  ", " █ █ ", "█   █"},
	'Y': {"█   █", " █ █ ", "  █  ", "  █  ", "  █  "},
	'Z': {"█████", "   █ ", "  █  ", " █   ", "█████"},
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "  ██ ", " █   ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
}

// renderCaptchaImage lays the code out as five lines of block-letter
// ASCII art, one glyph column per character.
func renderCaptchaImage(text string) string {
	var rows [5]strings.Builder
	for _, char := range text {
		glyph, ok := captchaFont[char]
		if !ok {
			continue
		}
		for i, line := range glyph {
			rows[i].WriteString(line)
			rows[i].WriteByte(' ')
		}
	}
	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}
