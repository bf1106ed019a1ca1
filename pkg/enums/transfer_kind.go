package enums

import "fmt"

// TransferKind identifies what a money transfer settles.
type TransferKind string

const (
	TransferKindEarnings       TransferKind = "earnings"
	TransferKindCOD            TransferKind = "cod"
	TransferKindMerchantPayout TransferKind = "merchant_payout"
)

var validTransferKinds = []TransferKind{
	TransferKindEarnings,
	TransferKindCOD,
	TransferKindMerchantPayout,
}

// String implements fmt.Stringer.
func (k TransferKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known TransferKind.
func (k TransferKind) IsValid() bool {
	for _, candidate := range validTransferKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseTransferKind converts raw input into a TransferKind.
func ParseTransferKind(value string) (TransferKind, error) {
	for _, candidate := range validTransferKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transfer kind %q", value)
}
