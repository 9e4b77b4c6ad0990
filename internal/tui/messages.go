package tui

import "github.com/MKhiriev/kiosk-gate/models"

type profilesLoadedMsg struct {
	profiles []models.UserProfile
	err      error
}

type loginResultMsg struct {
	session models.AuthSession
	err     error
}
