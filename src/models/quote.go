package models

import "acs/src/types"

type Quote struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	Code       string  `gorm:"uniqueIndex" json:"code,omitempty"`
	RequestID  uint    `json:"request_id,omitempty"`
	OperatorID uint    `json:"operator_id,omitempty"`
	Price      float64 `json:"price,omitempty"`
	Commission float64 `json:"commission,omitempty"`
	TotalPrice float64 `json:"total_price,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	Status types.QuoteStatus `gorm:"default:'pending'" json:"status,omitempty"`

	Request  *QuoteRequest `gorm:"foreignKey:request_id" json:"request,omitempty"`
	Operator *User         `gorm:"foreignKey:operator_id" json:"operator,omitempty"`

	types.Timestamps
}
