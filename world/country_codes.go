package world

import (
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

// CountryCode is a row of the country calling and ISO codes table.
type CountryCode struct {
	Country              string `col:"country"`
	CallingCode          string `col:"calling_code"`
	ThreeLetterISO       string `col:"three_letter_iso"`
	TwoLetterISO         string `col:"two_letter_iso"`
	ThreeDigitISONumeric string `col:"three_digit_iso_numeric"`
}

var CountryCodesSource = topic.Source{
	Name: "country-codes",
	Path: "/country-codes/",
	Tables: []extract.Schema{{
		"country",
		"calling_code",
		"three_letter_iso",
		"two_letter_iso",
		"three_digit_iso_numeric",
	}},
}

// CountryCodes is the table of calling codes and ISO codes per country.
type CountryCodes struct {
	*topic.Holder[topic.Rows[CountryCode]]
}

// NewCountryCodes creates an unloaded CountryCodes topic.
func NewCountryCodes(loader *topic.Loader) *CountryCodes {
	return &CountryCodes{topic.NewRowsHolder[CountryCode](loader, CountryCodesSource)}
}

func (t *CountryCodes) Data() []CountryCode {
	return t.Snapshot()
}
