package config

import (
	"fmt"
	"regexp"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/warp/statutory-engine/statutory"
)

// =============================================================================
// RATE FILE - Deployment-time statutory rate updates
// =============================================================================

// Rate file format:
//
//	rates:
//	  2026-27:
//	    family_weekly: "190.40"
//	    ssp_weekly: "121.10"
//	    lel_weekly: "127.00"
//
// Values are decimal strings; floats would lose the bit-exactness statutory
// amounts require.

var taxYearIDPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

type rateRow struct {
	FamilyWeekly string `koanf:"family_weekly"`
	SSPWeekly    string `koanf:"ssp_weekly"`
	LELWeekly    string `koanf:"lel_weekly"`
}

type rateFile struct {
	Rates map[string]rateRow `koanf:"rates"`
}

// LoadRates builds the rate table from the compiled-in defaults plus the
// YAML rate file at 'path'. An empty path returns the defaults. File rows
// replace default rows for the same tax year; validation rejects malformed
// tax-year ids and non-positive rates rather than letting a bad deploy
// silently misprice a statutory payment.
func LoadRates(path string) (*statutory.RateTable, error) {
	rows := defaultRows()

	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load rates file %s: %w", path, err)
		}
		var parsed rateFile
		if err := k.UnmarshalWithConf("", &parsed, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
			return nil, fmt.Errorf("failed to parse rates file %s: %w", path, err)
		}
		for year, row := range parsed.Rates {
			if !taxYearIDPattern.MatchString(year) {
				return nil, fmt.Errorf("malformed tax year id %q (want e.g. 2025-26)", year)
			}
			rates, err := parseRateRow(year, row)
			if err != nil {
				return nil, err
			}
			rows[statutory.TaxYear(year)] = rates
		}
	}

	return statutory.NewRateTable(rows), nil
}

func defaultRows() map[statutory.TaxYear]statutory.StatutoryRates {
	defaults := statutory.DefaultRateTable()
	rows := make(map[statutory.TaxYear]statutory.StatutoryRates)
	for _, year := range defaults.Years() {
		rates, _ := defaults.RatesForYear(year)
		rows[year] = rates
	}
	return rows
}

func parseRateRow(year string, row rateRow) (statutory.StatutoryRates, error) {
	family, err := parseRate(year, "family_weekly", row.FamilyWeekly)
	if err != nil {
		return statutory.StatutoryRates{}, err
	}
	ssp, err := parseRate(year, "ssp_weekly", row.SSPWeekly)
	if err != nil {
		return statutory.StatutoryRates{}, err
	}
	lel, err := parseRate(year, "lel_weekly", row.LELWeekly)
	if err != nil {
		return statutory.StatutoryRates{}, err
	}
	return statutory.StatutoryRates{FamilyWeekly: family, SSPWeekly: ssp, LELWeekly: lel}, nil
}

func parseRate(year, field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rates[%s].%s: invalid amount %q", year, field, value)
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("rates[%s].%s: amount must be positive, got %s", year, field, value)
	}
	return d, nil
}
