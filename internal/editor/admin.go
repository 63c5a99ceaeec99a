package editor

import (
	"crypto/subtle"
	"sync"
)

// Admin is the admin-mode state of one editing session. It replaces the
// ambient admin flag of the browser client with a value passed to whoever needs it.
//
// Admin mode only unlocks draft mutations. It never grants publish rights.
type Admin struct {
	mu        sync.RWMutex
	code      string
	active    bool
	panelOpen bool
}

// NewAdmin creates a locked admin state. An empty code disables admin mode.
func NewAdmin(code string) *Admin {
	return &Admin{code: code}
}

// Login unlocks admin mode when code matches the configured access code.
func (a *Admin) Login(code string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.code == "" || subtle.ConstantTimeCompare([]byte(code), []byte(a.code)) != 1 {
		return ErrInvalidAccessCode
	}
	a.active = true
	return nil
}

// Logout leaves admin mode and closes the panel.
func (a *Admin) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.active = false
	a.panelOpen = false
}

// IsAdmin reports whether admin mode is active.
func (a *Admin) IsAdmin() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active
}

// PanelOpen reports whether the settings panel is shown.
func (a *Admin) PanelOpen() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.panelOpen
}

// TogglePanel opens or closes the settings panel. Outside admin mode it does
// nothing. The new panel state is returned.
func (a *Admin) TogglePanel() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active {
		a.panelOpen = !a.panelOpen
	}
	return a.panelOpen
}
