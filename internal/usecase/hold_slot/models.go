package hold_slot

import "time"

// HoldRequest запрос на удержание слота
type HoldRequest struct {
	BusinessID int64
	ServiceID  int64
	Date       string // YYYY-MM-DD
	Time       string // "10:00" или "10:00 AM"
}

// HoldResponse результат удержания
type HoldResponse struct {
	ExpiresIn time.Duration
}

// ReleaseRequest запрос на снятие удержания
type ReleaseRequest struct {
	BusinessID int64
	Date       string
	Time       string
}
