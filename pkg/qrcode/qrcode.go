package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService turns a slug into a scannable PNG of the shareable link, for
// people who pass the page along in person instead of over chat.
type QRService struct {
	baseURL string
}

func NewQRService(baseURL string) *QRService {
	return &QRService{baseURL: baseURL}
}

func (s *QRService) GenerateForSlug(slug string, size int) ([]byte, error) {
	link := fmt.Sprintf("%s/love/%s", s.baseURL, slug)
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}
