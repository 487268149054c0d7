package domain

type CartItem struct {
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

type User struct {
	ID        string     `json:"_id"`
	UserName  string     `json:"userName"`
	Number    string     `json:"number,omitempty"`
	Location  string     `json:"location,omitempty"`
	Cart      []CartItem `json:"cart,omitempty"`
	CreatedAt string     `json:"createdAt,omitempty"`
}

type UpdateMessage struct {
	ID        string `json:"_id,omitempty"`
	Msg       string `json:"msg"`
	CreatedAt string `json:"createdAt,omitempty"`
}
