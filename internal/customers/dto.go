package customers

import "strings"

// CreateCustomerRequest is also used for updates; every field is replaced.
type CreateCustomerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name" validate:"required,max=64"`
	Email     string `json:"email" validate:"required,email,max=255"`
	IsMember  bool   `json:"is_member"`
}

type UpdateCustomerRequest = CreateCustomerRequest

func (r *CreateCustomerRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
}
