// internal/domain/mode.go
package domain

import (
	"fmt"
	"strings"
)

// Mode selects how aggressively RF stock is released for transfer.
type Mode string

const (
	// ModeConservative (A) releases RF stock above safety stock, at most
	// half of what is available, within the same OM.
	ModeConservative Mode = "A"
	// ModeEnhanced (B) releases RF stock above MOQ, at most 90% of what is
	// available, within the same OM.
	ModeEnhanced Mode = "B"
	// ModeSuper (C) waives the minimum-stock gate entirely and allows
	// cross-OM matching, except HD donors feeding HA/HB/HC receivers.
	ModeSuper Mode = "C"
)

// Transfer type tags emitted on recommendations.
const (
	TransferTypeND      = "ND Transfer"
	TransferTypeRFA     = "RF Excess Transfer"
	TransferTypeRFB     = "RF Enhanced Transfer"
	TransferTypeRFSuper = "RF Super Enhanced Transfer"
)

// Modes lists the selectable modes in ascending aggressiveness.
var Modes = []Mode{ModeConservative, ModeEnhanced, ModeSuper}

// ParseMode accepts the mode letter or its long name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "CONSERVATIVE":
		return ModeConservative, nil
	case "B", "ENHANCED":
		return ModeEnhanced, nil
	case "C", "SUPER", "SPECIAL":
		return ModeSuper, nil
	default:
		return "", fmt.Errorf("unknown transfer mode %q (want A, B or C)", s)
	}
}

// Name returns the human-readable mode name used in reports.
func (m Mode) Name() string {
	switch m {
	case ModeConservative:
		return "Conservative Transfer"
	case ModeEnhanced:
		return "Enhanced Transfer"
	case ModeSuper:
		return "Super Enhanced Transfer"
	default:
		return string(m)
	}
}
