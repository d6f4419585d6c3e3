package requests

type SMSNotification struct {
	Type      string `json:"type"`
	UserID    string `json:"userId"`
	Phone     string `json:"phone"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}
