package money

import "fmt"

// FormatPence форматирует сумму в пенсах как фунты: 12500 -> "£125.00"
// Отрицательные суммы выводятся как "£-1.50"
func FormatPence(pence int64) string {
	sign := ""
	if pence < 0 {
		sign = "-"
		pence = -pence
	}
	return fmt.Sprintf("£%s%d.%02d", sign, pence/100, pence%100)
}
