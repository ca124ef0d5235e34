// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package helpdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newServerClient points a client at an httptest server whose handler
// the test controls.
func newServerClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{Endpoints: EndpointsFromBase(server.URL)})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

// loginHandler answers any /auth POST with a fixed identity and
// otherwise delegates to next.
func loginHandler(user User, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth" {
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"user":    user,
				"token":   fmt.Sprintf("token_%d_%s", user.ID, user.Username),
			})
			return
		}
		if next != nil {
			next(w, r)
			return
		}
		http.NotFound(w, r)
	}
}

func TestEndpointsFromBase(t *testing.T) {
	endpoints := EndpointsFromBase("https://support.coldfire.example/")
	if endpoints.Auth != "https://support.coldfire.example/auth" {
		t.Errorf("auth = %q", endpoints.Auth)
	}
	if endpoints.Stats != "https://support.coldfire.example/moderator-stats" {
		t.Errorf("stats = %q", endpoints.Stats)
	}
	if !endpoints.Complete() {
		t.Error("derived endpoints should be complete")
	}
}

func TestEndpointsValidateRejectsMissing(t *testing.T) {
	endpoints := EndpointsFromBase("https://support.coldfire.example")
	endpoints.Captcha = ""
	if err := endpoints.Validate(); err == nil {
		t.Error("missing captcha endpoint should fail validation")
	}
	if _, err := NewClient(ClientConfig{Endpoints: endpoints}); err == nil {
		t.Error("NewClient should reject an incomplete endpoint set")
	}
}

func TestLoginParsesSession(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["action"] != "login" || body["username"] != "artyom_spartan" {
			t.Errorf("unexpected login body %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user": map[string]any{
				"id":       2,
				"username": "artyom_spartan",
				"role":     "moderator",
				"station":  "Полис",
			},
			"token": "token_2_artyom_spartan",
		})
	})

	session, err := client.Login(context.Background(), "artyom_spartan", "metro2033")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.User().Role != RoleModerator {
		t.Errorf("role = %s, want moderator", session.User().Role)
	}
	if session.Token() != "token_2_artyom_spartan" {
		t.Errorf("token = %q", session.Token())
	}
}

func TestLoginRejectsBlankFieldsLocally(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued for blank credentials")
	})
	if _, err := client.Login(context.Background(), "  ", "password"); err == nil {
		t.Error("blank username should fail")
	}
	if _, err := client.Login(context.Background(), "user", ""); err == nil {
		t.Error("blank password should fail")
	}
}

func TestAPIErrorEnvelope(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "invalid username or password"}`)
	})

	_, err := client.Login(context.Background(), "someone", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid username or password") {
		t.Errorf("error text should carry the server message, got %v", err)
	}
	if !IsAuthError(err) {
		t.Errorf("401 should be an auth error even when wrapped, got %v", err)
	}
}

func TestAPIErrorKeepsRawTextBody(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream timed out")
	})

	_, err := client.Login(context.Background(), "someone", "password")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "upstream timed out") {
		t.Errorf("non-JSON body should be preserved, got %v", err)
	}
	if IsAuthError(err) {
		t.Error("502 is not an auth error")
	}
}

func TestSessionSendsAuthHeaders(t *testing.T) {
	user := User{ID: 7, Username: "newbie_stalker", Role: RoleUser}
	client := newServerClient(t, loginHandler(user, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tickets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-User-Id") != "7" {
			t.Errorf("X-User-Id = %q", r.Header.Get("X-User-Id"))
		}
		if r.Header.Get("X-Auth-Token") != "token_7_newbie_stalker" {
			t.Errorf("X-Auth-Token = %q", r.Header.Get("X-Auth-Token"))
		}
		if r.URL.Query().Get("role") != "user" {
			t.Errorf("role query = %q", r.URL.Query().Get("role"))
		}
		fmt.Fprint(w, `{"tickets": []}`)
	}))

	session, err := client.Login(context.Background(), user.Username, "metro2033")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := session.Tickets(context.Background()); err != nil {
		t.Fatalf("Tickets: %v", err)
	}
}

func TestSendValidatesLocally(t *testing.T) {
	user := User{ID: 7, Username: "newbie_stalker", Role: RoleUser}
	client := newServerClient(t, loginHandler(user, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid sends must not reach the server")
	}))
	session, err := client.Login(context.Background(), user.Username, "metro2033")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := session.Send(ctx, 0, "hello"); err != ErrNoTicketSelected {
		t.Errorf("no ticket: got %v", err)
	}
	if _, err := session.Send(ctx, 1, "   \n  "); err != ErrEmptyMessage {
		t.Errorf("blank content: got %v", err)
	}
	// The cap counts runes, not bytes: 1000 multibyte characters are
	// fine, 1001 are not.
	if _, err := session.Send(ctx, 1, strings.Repeat("д", 1001)); err != ErrMessageTooLong {
		t.Errorf("overlong content: got %v", err)
	}
}

func TestSendAcceptsMaxLengthMessage(t *testing.T) {
	user := User{ID: 7, Username: "newbie_stalker", Role: RoleUser}
	var received string
	client := newServerClient(t, loginHandler(user, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content string `json:"content"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		received = body.Content
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"success": true, "message": {"id": 1}}`)
	}))
	session, err := client.Login(context.Background(), user.Username, "metro2033")
	if err != nil {
		t.Fatal(err)
	}

	content := strings.Repeat("д", 1000)
	message, err := session.Send(context.Background(), 1, content)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if message.ID != 1 {
		t.Errorf("message ID = %d, want 1", message.ID)
	}
	if received != content {
		t.Error("content should reach the server unmodified")
	}
}

func TestRegisterValidatesLocally(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid registrations must not reach the server")
	})
	ctx := context.Background()

	base := RegisterRequest{
		Username:        "khan",
		Password:        "dark-station",
		ConfirmPassword: "dark-station",
		Email:           "khan@coldfire.net",
		Station:         "Киевская",
		CaptchaToken:    "tok",
	}

	short := base
	short.Password = "abc"
	short.ConfirmPassword = "abc"
	if _, err := client.Register(ctx, short); err == nil {
		t.Error("short password should fail")
	}

	mismatch := base
	mismatch.ConfirmPassword = "other-thing"
	if _, err := client.Register(ctx, mismatch); err == nil {
		t.Error("password mismatch should fail")
	}

	noCaptcha := base
	noCaptcha.CaptchaToken = ""
	if _, err := client.Register(ctx, noCaptcha); err == nil {
		t.Error("missing captcha token should fail")
	}

	noStation := base
	noStation.Station = " "
	if _, err := client.Register(ctx, noStation); err == nil {
		t.Error("missing station should fail")
	}
}

func TestVerifyCaptchaNormalizesInput(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SessionToken string `json:"session_token"`
			CaptchaInput string `json:"captcha_input"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.CaptchaInput != "A1B2C" {
			t.Errorf("captcha_input = %q, want upcased trimmed A1B2C", body.CaptchaInput)
		}
		fmt.Fprint(w, `{"valid": true}`)
	})

	if err := client.VerifyCaptcha(context.Background(), "tok", "  a1b2c "); err != nil {
		t.Fatalf("VerifyCaptcha: %v", err)
	}
}

func TestVerifyCaptchaRejectsInvalidFlag(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"valid": false}`)
	})
	if err := client.VerifyCaptcha(context.Background(), "tok", "AAAAA"); err == nil {
		t.Error("valid=false must be an error")
	}
}
