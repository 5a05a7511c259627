package get_available_slots

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64
	ServiceID  int64
	Date       string  // YYYY-MM-DD в часовом поясе бизнеса
	Address    string  // Адрес клиента, пустой - без учета дороги
	Unit       *string // Квартира/офис, уточняет адрес
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  string
	Slots []Slot
}

// Slot модель временного слота
type Slot struct {
	Start    string // "9:30 AM"
	End      string // "11:30 AM"
	StartsAt string // RFC3339
	EndsAt   string // RFC3339
}
