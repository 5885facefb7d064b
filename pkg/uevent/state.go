package uevent

// Status is the charging state reported by POWER_SUPPLY_STATUS.
type Status int

const (
	StatusUnknown Status = iota
	StatusFull
	StatusDischarging
	StatusCharging
	// StatusNotCharging is never produced by ParseStatus: the kernel spells it
	// "Not charging", which is not part of the matched vocabulary.
	StatusNotCharging
)

// ParseStatus classifies a raw status value. Anything outside the
// vocabulary is StatusUnknown.
func ParseStatus(s string) Status {
	switch s {
	case "Full":
		return StatusFull
	case "Discharging":
		return StatusDischarging
	case "Charging":
		return StatusCharging
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	switch s {
	case StatusFull:
		return "Full"
	case StatusDischarging:
		return "Discharging"
	case StatusCharging:
		return "Charging"
	case StatusNotCharging:
		return "Not charging"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Level is the coarse bucket reported by POWER_SUPPLY_CAPACITY_LEVEL.
type Level int

const (
	LevelUnknown Level = iota
	LevelFull
	LevelNormal
	// LevelLow and LevelCritical are never produced by ParseLevel.
	LevelLow
	LevelCritical
)

// ParseLevel classifies a raw capacity level value. Anything outside the
// vocabulary is LevelUnknown.
func ParseLevel(s string) Level {
	switch s {
	case "Full":
		return LevelFull
	case "Normal":
		return LevelNormal
	default:
		return LevelUnknown
	}
}

func (l Level) String() string {
	switch l {
	case LevelFull:
		return "Full"
	case LevelNormal:
		return "Normal"
	case LevelLow:
		return "Low"
	case LevelCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
