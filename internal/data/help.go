package data

import (
	"fmt"
)

func sqlHoursAgo(hours float64) string {
	return fmt.Sprintf("-%g hours", hours)
}
