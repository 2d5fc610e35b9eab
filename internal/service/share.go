package service

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/hmdang/tripplanner/backend/internal/domain"
)

// ShareService produces and resolves shareable plan links.
//
// A share token is doubly nested: an inner deep link carrying the owner and
// plan ids as query parameters, URL-encoded into the link parameter of an
// outer shareable URI. Both layers must round-trip exactly, including ids
// containing URL-reserved characters.
type ShareService struct {
	shareDomain  string // outer link prefix, e.g. "https://tripplanner.page.link"
	deepLinkBase string // inner deep link base, e.g. "https://tripplanner.app"
}

// NewShareService constructs a ShareService for the given link domains.
// Both arguments are scheme://host prefixes without a trailing slash.
func NewShareService(shareDomain, deepLinkBase string) *ShareService {
	return &ShareService{shareDomain: shareDomain, deepLinkBase: deepLinkBase}
}

// EncodeShareLink builds the outer shareable URI for a plan. The outer
// planId parameter duplicates the inner one as a display hint; decode treats
// the inner URI as authoritative.
func (s *ShareService) EncodeShareLink(planID, ownerID string) string {
	inner := fmt.Sprintf("%s/plan?uid=%s&planId=%s",
		s.deepLinkBase, url.QueryEscape(ownerID), url.QueryEscape(planID))
	return fmt.Sprintf("%s/?link=%s&planId=%s",
		s.shareDomain, url.QueryEscape(inner), url.QueryEscape(planID))
}

// DecodeShareToken parses a shareable URI back into (planID, ownerID).
// Returns domain.ErrInvalidShareToken if either nesting layer fails to parse
// or a required parameter is absent.
func (s *ShareService) DecodeShareToken(uri string) (planID, ownerID string, err error) {
	outer, parseErr := url.Parse(uri)
	if parseErr != nil {
		return "", "", fmt.Errorf("service.ShareService.DecodeShareToken: outer: %w", domain.ErrInvalidShareToken)
	}
	link := outer.Query().Get("link")
	if link == "" {
		return "", "", fmt.Errorf("service.ShareService.DecodeShareToken: missing link parameter: %w", domain.ErrInvalidShareToken)
	}

	inner, parseErr := url.Parse(link)
	if parseErr != nil {
		return "", "", fmt.Errorf("service.ShareService.DecodeShareToken: inner: %w", domain.ErrInvalidShareToken)
	}
	q := inner.Query()
	planID = q.Get("planId")
	ownerID = q.Get("uid")
	if planID == "" || ownerID == "" {
		return "", "", fmt.Errorf("service.ShareService.DecodeShareToken: missing uid or planId: %w", domain.ErrInvalidShareToken)
	}
	return planID, ownerID, nil
}

// ShareQR renders the share link as a 256x256 PNG QR code suitable for
// scanning from another device.
func (s *ShareService) ShareQR(planID, ownerID string) ([]byte, error) {
	png, err := qrcode.Encode(s.EncodeShareLink(planID, ownerID), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("service.ShareService.ShareQR: %w", err)
	}
	return png, nil
}
