package googlemaps

// DistanceMatrixResponse ответ Distance Matrix API
type DistanceMatrixResponse struct {
	Status               string   `json:"status"`
	ErrorMessage         string   `json:"error_message,omitempty"`
	OriginAddresses      []string `json:"origin_addresses"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []Row    `json:"rows"`
}

type Row struct {
	Elements []Element `json:"elements"`
}

type Element struct {
	Status            string     `json:"status"`
	Duration          *TextValue `json:"duration,omitempty"`
	DurationInTraffic *TextValue `json:"duration_in_traffic,omitempty"`
	Distance          *TextValue `json:"distance,omitempty"`
}

// TextValue пара "человекочитаемый текст" + значение в базовых единицах (секунды/метры)
type TextValue struct {
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

// Duration результат запроса времени в пути
type Duration struct {
	Text    string
	Minutes int
}
