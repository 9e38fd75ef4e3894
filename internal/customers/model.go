package customers

// Customer は Customers テーブルの1行を表す
type Customer struct {
	ID        int64  `json:"customer_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsMember  bool   `json:"is_member"`
}
