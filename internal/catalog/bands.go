package catalog

import "fmt"

// Band is one labeled battle-power range. Value is the band's
// representative integer; the member's true battle power is deliberately
// quantized to it and is not recoverable from storage.
type Band struct {
	Label string
	Value int
}

// BattlePowerBands is the ordered band list offered by the wizard
var BattlePowerBands = buildBands()

func buildBands() []Band {
	bands := []Band{{Label: "≤10k", Value: 9000}}
	for low := 10; low < 56; low += 2 {
		bands = append(bands, Band{
			Label: fmt.Sprintf("%dk-%dk", low, low+2),
			Value: (low + 1) * 1000,
		})
	}
	return append(bands, Band{Label: "56k+", Value: 57000})
}

// BandByValue finds the band whose representative value matches exactly
func BandByValue(value int) (Band, bool) {
	for _, b := range BattlePowerBands {
		if b.Value == value {
			return b, true
		}
	}
	return Band{}, false
}

// BandLabelFor renders a stored battle-power value back to its band label.
// Values with no exact band match (e.g. imported legacy data) fall back to
// a generic approximation rather than failing.
func BandLabelFor(value int) string {
	if b, ok := BandByValue(value); ok {
		return b.Label
	}
	return fmt.Sprintf("~%d", value)
}
