// Package qr renders a reservation confirmation as a terminal QR code the
// restaurant can scan at the door.
package qr

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/NasmeenI/tablebook/internal/models"
)

// Ticket encodes the reservation reference into an ASCII QR code.
func Ticket(reservation *models.Reservation) (string, error) {
	payload := fmt.Sprintf("tablebook:reservation:%s", reservation.ID)

	code, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	bitmap := code.Bitmap()

	var sb strings.Builder
	for i := 0; i < len(bitmap); i++ {
		for j := 0; j < len(bitmap[i]); j++ {
			if bitmap[i][j] {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
