package models

// WelcomeEmail — сообщение для очереди приветственных писем.
// Публикуется при регистрации и обрабатывается воркером отправки почты.
type WelcomeEmail struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	URL   string `json:"url"`
}
