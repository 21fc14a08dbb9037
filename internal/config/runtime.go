package config

import "sync"

// RuntimeSettings holds settings changed while the viewer runs
type RuntimeSettings struct {
	mu         sync.RWMutex
	fpsLimit   int     // 0 means unlimited
	clockSpeed float32 // simulated hours per second
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit:   60,
	clockSpeed: 0.5,
}

const (
	MaxFPSLimit   = 1000
	MaxClockSpeed = 24
)

// GetFPSLimit returns the frame rate cap, 0 for unlimited
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > MaxFPSLimit {
		limit = MaxFPSLimit
	}

	globalRuntimeSettings.fpsLimit = limit
}

// GetClockSpeed returns how many simulated hours pass per real second
func GetClockSpeed() float32 {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.clockSpeed
}

// SetClockSpeed sets the simulated clock speed
func SetClockSpeed(speed float32) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if speed < 0 {
		speed = 0
	}
	if speed > MaxClockSpeed {
		speed = MaxClockSpeed
	}

	globalRuntimeSettings.clockSpeed = speed
}

// Apply copies the runtime part of a viewer section into the settings
func Apply(v Viewer) {
	SetFPSLimit(v.FPSLimit)
	SetClockSpeed(v.ClockSpeed)
}
