package release_hold

// ReleaseHoldRequest HTTP request model
type ReleaseHoldRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}
