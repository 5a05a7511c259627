package mailer

// Message письмо (только текстовое тело)
type Message struct {
	To          string
	ToName      string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Attachment вложение письма
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}
