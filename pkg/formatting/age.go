package formatting

import (
	"fmt"
	"time"
)

// Age renders a duration with its two most significant units, e.g. "3d 4h".
func Age(age time.Duration) string {
	if age < 0 {
		age = 0
	}

	units := []struct {
		suffix string
		size   time.Duration
	}{
		{"d", 24 * time.Hour},
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	}

	for i, unit := range units {
		if age < unit.size && i < len(units)-1 {
			continue
		}

		major := age / unit.size
		if i == len(units)-1 {
			return fmt.Sprintf("%d%s", major, unit.suffix)
		}

		next := units[i+1]
		minor := (age % unit.size) / next.size

		if minor == 0 {
			return fmt.Sprintf("%d%s", major, unit.suffix)
		}

		return fmt.Sprintf("%d%s %d%s", major, unit.suffix, minor, next.suffix)
	}

	return "0s"
}
