package weather

import (
	"encoding/json"
	"fmt"
)

// Units selects the temperature scale for a normalized report.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Symbol returns the display symbol for the temperature scale.
func (u Units) Symbol() string {
	if u == UnitsImperial {
		return "°F"
	}
	return "°C"
}

// ParseUnits validates a units string coming from CLI flags or query params.
func ParseUnits(s string) (Units, error) {
	switch Units(s) {
	case UnitsMetric:
		return UnitsMetric, nil
	case UnitsImperial:
		return UnitsImperial, nil
	default:
		return "", fmt.Errorf("invalid units %q (allowed: metric, imperial)", s)
	}
}

// Document is a raw provider response, kept verbatim so caching can
// reproduce exactly what the provider sent.
type Document []byte

// Report is the normalized weather view derived from a provider document.
// Temperature is Celsius when Units is metric, Fahrenheit when imperial.
type Report struct {
	City        string   `json:"city"`
	Temperature float64  `json:"temperature"`
	Humidity    int      `json:"humidity"`
	Condition   string   `json:"condition"`
	Units       Units    `json:"units"`
	Raw         Document `json:"-"`
}

// payload mirrors the subset of the WeatherAPI.com current-conditions
// response we project from. Pointers distinguish absent fields from zeroes.
type payload struct {
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
	Current *struct {
		TempC     *float64 `json:"temp_c"`
		TempF     *float64 `json:"temp_f"`
		Humidity  *float64 `json:"humidity"`
		Condition *struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

// Normalize projects a raw provider document into a Report for the requested
// units. The document is retained on the report for later caching.
func Normalize(doc Document, units Units) (Report, error) {
	var p payload
	if err := json.Unmarshal(doc, &p); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if p.Location == nil || p.Location.Name == "" {
		return Report{}, fmt.Errorf("%w: missing location.name", ErrSchema)
	}
	if p.Current == nil {
		return Report{}, fmt.Errorf("%w: missing current block", ErrSchema)
	}
	if p.Current.Humidity == nil {
		return Report{}, fmt.Errorf("%w: missing current.humidity", ErrSchema)
	}
	if p.Current.Condition == nil {
		return Report{}, fmt.Errorf("%w: missing current.condition.text", ErrSchema)
	}

	temp := p.Current.TempC
	if units == UnitsImperial {
		temp = p.Current.TempF
	}
	if temp == nil {
		field := "current.temp_c"
		if units == UnitsImperial {
			field = "current.temp_f"
		}
		return Report{}, fmt.Errorf("%w: missing %s", ErrSchema, field)
	}

	return Report{
		City:        p.Location.Name,
		Temperature: *temp,
		Humidity:    int(*p.Current.Humidity),
		Condition:   p.Current.Condition.Text,
		Units:       units,
		Raw:         doc,
	}, nil
}
