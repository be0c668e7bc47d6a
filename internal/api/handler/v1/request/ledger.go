package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SubmitDepositRequest struct {
	ExternalReference string `json:"external_reference"`
	Amount            int    `json:"amount"`
}

func (req *SubmitDepositRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ExternalReference, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Amount, validation.Required, validation.Min(1)),
	)
}

type RejectTransactionRequest struct {
	Reason string `json:"reason"`
}

func (req *RejectTransactionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Length(0, 200)),
	)
}
