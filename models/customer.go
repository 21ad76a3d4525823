package models

import "time"

// Customer is a registered buyer.
type Customer struct {
	SyncMeta

	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	CpfCnpj *string `json:"cpf_cnpj,omitempty"`

	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	ZipCode *string `json:"zip_code,omitempty"`

	BirthDate *time.Time `json:"birth_date,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	IsVIP     bool       `json:"is_vip"`
}
