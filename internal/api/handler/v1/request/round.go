package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CloseRoundRequest struct {
	WinningNumbers []int `json:"winning_numbers"`
}

func (req *CloseRoundRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.WinningNumbers,
			validation.Required,
			validation.Length(3, 3),
			validation.Each(validation.Min(1), validation.Max(16)),
		),
	)
}
