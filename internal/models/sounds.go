package models

import "slices"

// DefaultSound is played when the user has not picked one.
const DefaultSound = "pop-alert"

// AvailableSounds lists the sound identifiers shipped with the application.
var AvailableSounds = []string{
	"pop-alert",
	"notification",
	"sci-fi-confirmation",
	"software-interface-back",
	"arabian-mystery-harp",
	"confirmation-tone",
	"happy-bells",
	"interface-option-select",
	"magic-notification-ring",
	"melodical-flute-music",
	"positive-notification",
	"software-interface",
	"urgent-simple-tone-loop",
	"wrong-answer-fail",
	"angry-cartoon-kitty-meow",
	"cartoon-kitty-begging-meow",
	"cartoon-little-cat-meow",
	"domestic-cat-hungry-meow",
	"little-cat-attention-meow",
	"little-cat-pain-meow",
	"sweet-kitty-meow",
}

// IsKnownSound reports whether id is one of AvailableSounds.
func IsKnownSound(id string) bool {
	return slices.Contains(AvailableSounds, id)
}
