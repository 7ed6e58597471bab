package service

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRGenerator renders a table's QR code as PNG
type QRGenerator interface {
	Generate(tableNumber int) ([]byte, error)
}

// TableQRGenerator points each code at BaseURL/tables/<number>
type TableQRGenerator struct {
	BaseURL string
	Size    int
}

// URL returns the address encoded for tableNumber
func (g TableQRGenerator) URL(tableNumber int) string {
	return fmt.Sprintf("%s/tables/%d", strings.TrimRight(g.BaseURL, "/"), tableNumber)
}

func (g TableQRGenerator) Generate(tableNumber int) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.URL(tableNumber), qrcode.Medium, size)
}
