package enums

import "fmt"

// TacoSize is the size code the ordering backend expects on a taco line.
type TacoSize string

const (
	TacoSizeM   TacoSize = "M"
	TacoSizeL   TacoSize = "L"
	TacoSizeXL  TacoSize = "XL"
	TacoSizeXXL TacoSize = "XXL"
)

var validTacoSizes = []TacoSize{
	TacoSizeM,
	TacoSizeL,
	TacoSizeXL,
	TacoSizeXXL,
}

// String implements fmt.Stringer.
func (s TacoSize) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TacoSize.
func (s TacoSize) IsValid() bool {
	for _, candidate := range validTacoSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTacoSize converts raw input into a TacoSize.
func ParseTacoSize(value string) (TacoSize, error) {
	for _, candidate := range validTacoSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid taco size %q", value)
}
