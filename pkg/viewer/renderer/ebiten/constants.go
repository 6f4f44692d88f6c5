// Package ebiten provides the Ebiten-based interactive window for the map viewer.
package ebiten

import "image/color"

// Color palette for the HUD
var (
	colorPanelBackground = color.RGBA{30, 30, 50, 200}   // Semi-transparent dark
	colorText            = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorLoading         = color.RGBA{255, 220, 100, 255} // Yellow while tiles load
	colorFailed          = color.RGBA{255, 120, 120, 255} // Red when tiles failed
	colorCalloutBorder   = color.RGBA{231, 219, 145, 255} // Matches the map label text
	colorCalloutTitle    = color.RGBA{231, 219, 145, 255}
)

// HUD layout
const (
	hudFontSize      = 14.0
	hudPadding       = 8.0
	hudLineSpacing   = 4.0
	calloutOffset    = 16.0 // Distance from the cursor to the hover callout
	calloutMaxQuests = 8    // Further hovered quests are summarised as "+N"
)

const (
	keyRepeatInitialDelay = 300 // Initial delay before first repeat (milliseconds)
	keyRepeatInterval     = 50  // Interval between repeat events (milliseconds)
)

const windowTitle = "World Map"
