package campaign

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// ClipboardWriter writes text to a clipboard
type ClipboardWriter interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available on this system")
	}
	return clipboard.WriteAll(text)
}

// CopyReferralCode puts the campaign's referral code on the clipboard
func (c *Campaign) CopyReferralCode(w ClipboardWriter) error {
	if c.ReferralCode == "" {
		return ErrNoReferralCode
	}
	if err := w.WriteAll(c.ReferralCode); err != nil {
		return fmt.Errorf("failed to copy referral code: %w", err)
	}
	return nil
}
