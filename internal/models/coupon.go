package models

import "time"

// Coupon представляет промокод, создаваемый администратором.
// Купон дает либо скидку в процентах на чекаут, либо продление
// пробного периода, и ограничен числом активаций и сроком действия.
type Coupon struct {
	ID             int        `json:"id"`
	Code           string     `json:"code"`
	PercentOff     int        `json:"percent_off"`
	TrialDays      int        `json:"trial_days"`
	MaxRedemptions int        `json:"max_redemptions"`
	RedeemedCount  int        `json:"redeemed_count"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
}
