package campaign

import "errors"

var (
	ErrUnknownRegion  = errors.New("unknown region")
	ErrNoReferralCode = errors.New("campaign has no referral code")
)
