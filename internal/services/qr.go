package services

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// WasteIDQRCode renders a citizen's unique waste ID as a PNG QR code,
// scanned by workers at the curb to attribute a pickup.
func WasteIDQRCode(wasteID string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(wasteID, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}
