// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coldfire-project/coldfire/helpdesk"
)

// authMode selects which form the auth screen shows.
type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// Field order on the registration form.
const (
	registerFieldUsername = iota
	registerFieldEmail
	registerFieldStation
	registerFieldPassword
	registerFieldConfirm
	registerFieldCaptcha
)

// authScreen holds the state of the authentication phase: the active
// form, its fields, and the captcha challenge for registration.
type authScreen struct {
	mode        authMode
	fields      []*TextField
	fieldCursor int
	captcha     captchaPanel
	errorText   string
	busy        bool

	// pendingRegister is the validated registration payload waiting
	// for the server to confirm the captcha answer.
	pendingRegister *helpdesk.RegisterRequest
}

// newAuthScreen creates the auth screen in login mode.
func newAuthScreen() authScreen {
	screen := authScreen{}
	screen.buildFields()
	return screen
}

// buildFields recreates the field set for the current mode. Typed
// content does not survive a mode switch.
func (screen *authScreen) buildFields() {
	switch screen.mode {
	case modeLogin:
		screen.fields = []*TextField{
			{Label: "Callsign"},
			{Label: "Password", Masked: true},
		}
	case modeRegister:
		screen.fields = []*TextField{
			{Label: "Callsign"},
			{Label: "Email"},
			{Label: "Station"},
			{Label: "Password", Masked: true},
			{Label: "Confirm", Masked: true},
			{Label: "Captcha", MaxRunes: helpdesk.CaptchaCodeLength},
		}
	}
	screen.fieldCursor = 0
}

// switchMode toggles between login and registration. Entering
// registration needs a captcha, so the caller fetches one when the
// returned value is true.
func (screen *authScreen) switchMode() bool {
	if screen.mode == modeLogin {
		screen.mode = modeRegister
	} else {
		screen.mode = modeLogin
	}
	screen.errorText = ""
	screen.pendingRegister = nil
	screen.buildFields()
	return screen.mode == modeRegister
}

// handleAuthKeys routes keyboard input during the auth phase.
func (model Model) handleAuthKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := &model.auth

	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit

	case tea.KeyCtrlT:
		if screen.busy {
			return model, nil
		}
		if screen.switchMode() {
			screen.captcha.loading = true
			return model, fetchCaptchaCmd(model.ctx, model.client)
		}
		return model, nil

	case tea.KeyCtrlR:
		if screen.mode == modeRegister && !screen.busy {
			screen.captcha.loading = true
			screen.fields[registerFieldCaptcha].Reset()
			return model, fetchCaptchaCmd(model.ctx, model.client)
		}
		return model, nil

	case tea.KeyTab, tea.KeyDown:
		screen.fieldCursor = (screen.fieldCursor + 1) % len(screen.fields)
		return model, nil

	case tea.KeyShiftTab, tea.KeyUp:
		screen.fieldCursor--
		if screen.fieldCursor < 0 {
			screen.fieldCursor = len(screen.fields) - 1
		}
		return model, nil

	case tea.KeyEnter:
		// Enter advances through the form; on the last field it
		// submits.
		if screen.fieldCursor < len(screen.fields)-1 {
			screen.fieldCursor++
			return model, nil
		}
		return model.submitAuth()
	}

	if !screen.busy {
		screen.fields[screen.fieldCursor].Update(message)
	}
	return model, nil
}

// submitAuth validates the active form and issues the credential
// check. Registration verifies the captcha answer first; the account
// request follows in captchaVerifiedMsg handling.
func (model Model) submitAuth() (tea.Model, tea.Cmd) {
	screen := &model.auth
	if screen.busy {
		return model, nil
	}
	screen.errorText = ""

	if screen.mode == modeLogin {
		username := strings.TrimSpace(screen.fields[0].Value())
		password := screen.fields[1].Value()
		if username == "" || password == "" {
			screen.errorText = "callsign and password are required"
			return model, nil
		}
		screen.busy = true
		return model, loginCmd(model.ctx, model.client, username, password)
	}

	request := helpdesk.RegisterRequest{
		Username:        strings.TrimSpace(screen.fields[registerFieldUsername].Value()),
		Email:           strings.TrimSpace(screen.fields[registerFieldEmail].Value()),
		Station:         strings.TrimSpace(screen.fields[registerFieldStation].Value()),
		Password:        screen.fields[registerFieldPassword].Value(),
		ConfirmPassword: screen.fields[registerFieldConfirm].Value(),
		CaptchaToken:    screen.captcha.token(),
	}
	answer := strings.TrimSpace(screen.fields[registerFieldCaptcha].Value())

	switch {
	case request.Username == "" || request.Email == "" || request.Station == "":
		screen.errorText = "all fields are required"
	case len(request.Password) < helpdesk.MinPasswordLength:
		screen.errorText = "password must be at least 6 characters"
	case request.Password != request.ConfirmPassword:
		screen.errorText = "passwords do not match"
	case request.CaptchaToken == "":
		screen.errorText = "captcha is still loading"
	case len(answer) != helpdesk.CaptchaCodeLength:
		screen.errorText = "enter the 5-character captcha code"
	}
	if screen.errorText != "" {
		return model, nil
	}

	screen.busy = true
	screen.pendingRegister = &request
	return model, verifyCaptchaCmd(model.ctx, model.client, request.CaptchaToken, answer)
}

// handleAuthResult processes login/register outcomes and the captcha
// lifecycle messages during the auth phase.
func (model Model) handleAuthResult(message tea.Msg) (tea.Model, tea.Cmd) {
	screen := &model.auth

	switch message := message.(type) {
	case captchaMsg:
		if message.err != nil {
			screen.captcha.loading = false
			screen.errorText = "captcha unavailable: " + message.err.Error()
			return model, nil
		}
		screen.captcha.setChallenge(message.challenge)
		return model, scheduleCountdown(screen.captcha.generation)

	case countdownTickMsg:
		if screen.captcha.tick(message.generation) {
			// Expired: fetch a replacement automatically.
			screen.captcha.loading = true
			screen.fields[registerFieldCaptcha].Reset()
			return model, fetchCaptchaCmd(model.ctx, model.client)
		}
		if message.generation == screen.captcha.generation && screen.captcha.remaining > 0 {
			return model, scheduleCountdown(message.generation)
		}
		return model, nil

	case captchaVerifiedMsg:
		if screen.pendingRegister == nil {
			return model, nil
		}
		if message.err != nil {
			screen.busy = false
			screen.pendingRegister = nil
			screen.errorText = message.err.Error()
			// Captcha answers are single-use; get a fresh one.
			screen.captcha.loading = true
			screen.fields[registerFieldCaptcha].Reset()
			return model, fetchCaptchaCmd(model.ctx, model.client)
		}
		request := *screen.pendingRegister
		screen.pendingRegister = nil
		return model, registerCmd(model.ctx, model.client, request)

	case loginResultMsg:
		if message.err != nil {
			screen.busy = false
			screen.errorText = message.err.Error()
			return model, nil
		}
		return model.enterChat(message.session)

	case registerResultMsg:
		if message.err != nil {
			screen.busy = false
			screen.errorText = message.err.Error()
			screen.captcha.loading = true
			screen.fields[registerFieldCaptcha].Reset()
			return model, fetchCaptchaCmd(model.ctx, model.client)
		}
		return model.enterChat(message.session)
	}

	return model, nil
}

// authFormWidth is the inner width of the centered auth box.
const authFormWidth = 46

// viewAuth renders the centered login/registration box.
func (model Model) viewAuth() string {
	screen := model.auth
	theme := model.theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accent)
	subtitleStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accent).
		Underline(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText)
	errorStyle := lipgloss.NewStyle().
		Foreground(theme.ErrorForeground)
	helpStyle := lipgloss.NewStyle().
		Foreground(theme.HelpText)

	var body strings.Builder
	body.WriteString(titleStyle.Render("COLDFIRE SUPPORT TERMINAL"))
	body.WriteString("\n")
	body.WriteString(subtitleStyle.Render("the tunnels are listening"))
	body.WriteString("\n\n")

	loginTab := inactiveTabStyle.Render("Sign in")
	registerTab := inactiveTabStyle.Render("Register")
	if screen.mode == modeLogin {
		loginTab = activeTabStyle.Render("Sign in")
	} else {
		registerTab = activeTabStyle.Render("Register")
	}
	body.WriteString(loginTab + "   " + registerTab)
	body.WriteString("\n\n")

	for index, field := range screen.fields {
		body.WriteString(field.View(authFormWidth, index == screen.fieldCursor && !screen.busy, theme))
		body.WriteString("\n")
	}

	if screen.mode == modeRegister {
		body.WriteString("\n")
		body.WriteString(screen.captcha.view(theme))
		body.WriteString("\n")
	}

	if screen.busy {
		body.WriteString("\n")
		body.WriteString(subtitleStyle.Render("contacting the surface…"))
	} else if screen.errorText != "" {
		body.WriteString("\n")
		body.WriteString(errorStyle.Render(screen.errorText))
	}

	body.WriteString("\n\n")
	switch screen.mode {
	case modeLogin:
		body.WriteString(helpStyle.Render("Enter submit  Ctrl+T register  Ctrl+C quit"))
	case modeRegister:
		body.WriteString(helpStyle.Render("Enter submit  Ctrl+T sign in  Ctrl+R new code"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 2).
		Render(body.String())

	return lipgloss.Place(model.width, model.height,
		lipgloss.Center, lipgloss.Center, box)
}
