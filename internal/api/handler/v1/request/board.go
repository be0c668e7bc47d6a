package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type PurchaseBoardRequest struct {
	RoundID     uint  `json:"round_id"`
	Numbers     []int `json:"numbers"`
	RepeatWeeks int   `json:"repeat_weeks"`
}

func (req *PurchaseBoardRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RoundID, validation.Required),
		validation.Field(&req.Numbers,
			validation.Required,
			validation.Length(5, 8),
			validation.Each(validation.Min(1), validation.Max(16)),
		),
		validation.Field(&req.RepeatWeeks, validation.Min(0), validation.Max(52)),
	)
}
