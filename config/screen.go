package config

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Window configuration
const (
	// Initial window dimensions in pixels
	WindowWidth  = 800
	WindowHeight = 600

	// Default window title
	WindowTitle = "Cube Sync"

	// Update ticks per second
	DefaultTPS = 60
)

// Projection parameters. Only the aspect ratio changes at runtime.
const (
	FieldOfViewDeg = 45.0
	NearPlane      = 1.0
	FarPlane       = 40.0
)

// StepSize is the distance the cube travels per directional key press
const StepSize = 1.0

// Camera placement, fixed for the lifetime of the process
var (
	CameraEye    = mgl32.Vec3{1.5, -5.0, 3.0}
	CameraTarget = mgl32.Vec3{0, 0, 0}
	CameraUp     = mgl32.Vec3{0, 0, 1} // the scene is Z-up
)

// Colors
var (
	ClearColor   = color.RGBA{77, 77, 77, 255} // (0.3, 0.3, 0.3)
	TextureColor = color.RGBA{0x20, 0x0A, 0xC0, 0xFF}
)

// GetWindowSize returns the initial window size
func GetWindowSize() (width, height int) {
	return WindowWidth, WindowHeight
}
