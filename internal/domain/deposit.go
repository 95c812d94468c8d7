package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DepositFor возвращает депозит 50% с округлением половины вверх
func DepositFor(totalPence int64) int64 {
	if totalPence <= 0 {
		return 0
	}
	return (totalPence + 1) / 2
}

// Remaining остаток к оплате после депозита
func Remaining(totalPence, depositPence int64) int64 {
	return totalPence - depositPence
}

// maxPounds наибольшая сумма, которая помещается в int64 пенсов
const maxPounds = math.MaxInt64 / 100

// ParsePounds переводит введённую сумму в фунтах в пенсы: "12.34" -> 1234
// Пустая строка даёт 0. Округление как у Math.round(x*100)
func ParsePounds(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	pounds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(pounds) || math.IsInf(pounds, 0) || math.Abs(pounds) >= maxPounds {
		return 0, strconv.ErrRange
	}

	return int64(math.Floor(pounds*100 + 0.5)), nil
}

// FormatPounds значение для поля ввода суммы: 1234 -> "12.34"
func FormatPounds(pence int64) string {
	sign := ""
	if pence < 0 {
		sign = "-"
		pence = -pence
	}
	return fmt.Sprintf("%s%d.%02d", sign, pence/100, pence%100)
}
