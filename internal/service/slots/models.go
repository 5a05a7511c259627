package slots

import (
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// Request входные данные для подбора слотов на один день
type Request struct {
	Date        time.Time      // День, для которого ищем слоты (время игнорируется)
	Location    *time.Location // Часовой пояс бизнеса
	Hours       *domain.BusinessHours
	Duration    time.Duration
	Busy        []domain.BusyInterval // Активные брони и события календаря
	Destination string                // Адрес клиента. Пусто - без учета дороги
	Now         time.Time
}
