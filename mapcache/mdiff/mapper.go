package mdiff

import (
	"strings"
)

// LabelFromCode never fails: unknown codes, including the zero value of the
// wire enum, map to FallbackLabel.
func LabelFromCode(code Code) Label {
	switch label, ok := labelByCode[code]; {
	case ok:
		return label
	default:
		return FallbackLabel
	}
}

// CharacteristicFromCode never fails: unknown codes map to FallbackCharacteristic.
func CharacteristicFromCode(code Code) Characteristic {
	switch characteristic, ok := characteristicByCode[code]; {
	case ok:
		return characteristic
	default:
		return FallbackCharacteristic
	}
}

// ParseLabel reads the label names used by map info files and the remote
// catalog ("Expert+", "ExpertPlus", "expertplus").
func ParseLabel(s string) (Label, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "+", "plus"))
	for _, label := range labelByCode {
		if strings.ToLower(string(label)) == normalized {
			return label, true
		}
	}
	return FallbackLabel, false
}

func ParseCharacteristic(s string) (Characteristic, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, characteristic := range characteristicByCode {
		if strings.ToLower(string(characteristic)) == normalized {
			return characteristic, true
		}
	}
	return FallbackCharacteristic, false
}

func (r Label) Code() Code {
	for code, label := range labelByCode {
		if label == r {
			return code
		}
	}
	return 0
}

func (r Characteristic) Code() Code {
	for code, characteristic := range characteristicByCode {
		if characteristic == r {
			return code
		}
	}
	return 0
}
