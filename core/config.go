package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config pledge config
type Config struct {
	App       App       `json:"app"`
	DB        db.Config `json:"db"`
	PriceFeed PriceFeed `json:"price_feed"`
	Credit    Credit    `json:"credit"`
	Admins    []string  `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	for _, a := range c.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// App app config
type App struct {
	Location string `json:"location"`
}

// PriceFeed external price feed config
type PriceFeed struct {
	EndPoint string `json:"end_point"`
	// poll interval in seconds
	Interval int64 `json:"interval"`
}

// Credit credit scorer config
type Credit struct {
	// 信用分上限
	Ceiling int64 `json:"ceiling"`
	// 每档奖励分值, 档位为剩余 75%/50%/25%/0%
	TierAward int64 `json:"tier_award"`
}
