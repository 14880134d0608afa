package models

import "time"

// Commission представляет комиссию продавца с успешного платежа
// приведенного им бизнеса.
type Commission struct {
	ID             int       `json:"id"`
	SalespersonUID string    `json:"salesperson_uid"`
	BusinessUID    string    `json:"business_uid"`
	PaymentID      string    `json:"payment_id"`
	Amount         float64   `json:"amount"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReferralStats — сводка по реферальной программе продавца
// для его дашборда.
type ReferralStats struct {
	ReferralCode     string  `json:"referral_code"`
	ReferredTotal    int     `json:"referred_total"`
	ReferredActive   int     `json:"referred_active"`
	CommissionTotal  float64 `json:"commission_total"`
	CommissionsCount int     `json:"commissions_count"`
}
