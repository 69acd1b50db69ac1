package types

import "fmt"

// CoinValue 金币面值
type CoinValue int

const (
	CoinBronze CoinValue = 1
	CoinSilver CoinValue = 5
	CoinGold   CoinValue = 10
)

// ParseCoinValue 将配置文件中的金币类型字符串转换为 CoinValue
func ParseCoinValue(s string) (CoinValue, error) {
	switch s {
	case "bronze":
		return CoinBronze, nil
	case "silver":
		return CoinSilver, nil
	case "gold":
		return CoinGold, nil
	}
	return 0, fmt.Errorf("unknown coin kind %q", s)
}

func (c CoinValue) String() string {
	switch c {
	case CoinBronze:
		return "bronze"
	case CoinSilver:
		return "silver"
	case CoinGold:
		return "gold"
	}
	return "unknown"
}
