package response

import "github.com/klublotto/klublotto-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type BalanceResponse struct {
	PlayerID uint `json:"player_id"`
	Balance  int  `json:"balance"`
}

type SeedResponse struct {
	Created   int  `json:"created"`
	Existing  int  `json:"existing"`
	Activated bool `json:"activated"`
}

// PriceTableResponse mirrors the fixed count-to-price schedule so clients
// can display prices without hardcoding them.
type PriceTableResponse struct {
	Prices map[int]int `json:"prices"`
}
