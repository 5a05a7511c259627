package payment

// SessionRequest параметры платежной сессии
type SessionRequest struct {
	ProductName       string
	Description       string
	AmountCents       int64
	CustomerEmail     string
	ClientReferenceID string // Наш session_id черновика
	SuccessURL        string
	CancelURL         string
	Metadata          map[string]string
}

// Session платежная сессия провайдера
type Session struct {
	ID                string
	URL               string
	ClientReferenceID string
	Paid              bool
}
