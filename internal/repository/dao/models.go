package dao

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Round struct {
	ID             uint `gorm:"primaryKey"`
	Year           int  `gorm:"not null;uniqueIndex:idx_rounds_year_week"`
	WeekNumber     int  `gorm:"not null;uniqueIndex:idx_rounds_year_week"`
	WinningNumbers datatypes.JSON
	IsActive       bool `gorm:"not null;default:false;index"`
	Boards         []Board
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ClosedAt       *time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

type Board struct {
	ID                   uint           `gorm:"primaryKey"`
	PlayerID             uint           `gorm:"not null;index"`
	RoundID              uint           `gorm:"not null;index"`
	Numbers              datatypes.JSON `gorm:"not null"`
	Price                int            `gorm:"not null"`
	IsWinning            bool           `gorm:"not null;default:false"`
	RepeatWeeksRemaining int            `gorm:"not null;default:0"`
	RepeatActive         bool           `gorm:"not null;default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

type Transaction struct {
	ID                uint   `gorm:"primaryKey"`
	PlayerID          uint   `gorm:"not null;index"`
	ExternalReference string `gorm:"not null;index:idx_transactions_reference,unique,where:deleted_at IS NULL"`
	Amount            int    `gorm:"not null"`
	Status            string `gorm:"not null;default:'Pending';index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ApprovedAt        *time.Time
	RejectionReason   string
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

type Player struct {
	ID          uint   `gorm:"primaryKey"`
	FullName    string `gorm:"not null"`
	Email       string `gorm:"not null;uniqueIndex"`
	Phone       string
	IsActive    bool `gorm:"not null;default:false"`
	ActivatedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"not null;uniqueIndex"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"not null;default:'player'"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// EncodeNumbers stores a canonical number list as a JSON array column.
func EncodeNumbers(numbers []int) datatypes.JSON {
	raw, _ := json.Marshal(numbers)

	return datatypes.JSON(raw)
}

func DecodeNumbers(raw datatypes.JSON) []int {
	if len(raw) == 0 {
		return nil
	}

	var numbers []int
	if err := json.Unmarshal(raw, &numbers); err != nil {
		return nil
	}

	return numbers
}
