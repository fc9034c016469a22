package weather

import "fmt"

// Format renders a report as the one-line summary shown to the user, e.g.
// "Berlin: 20.5°C, 65% humidity, Sunny".
func Format(r Report) string {
	return fmt.Sprintf("%s: %.1f%s, %d%% humidity, %s",
		r.City, r.Temperature, r.Units.Symbol(), r.Humidity, r.Condition)
}
