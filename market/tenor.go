package market

import (
	"fmt"
	"strings"
	"time"
)

// Tenor is a standard FX forward maturity.
type Tenor int

const (
	Spot Tenor = iota
	OneWeek
	OneMonth
	TwoMonths
	ThreeMonths
	SixMonths
	NineMonths
	OneYear
)

type tenorMeta struct {
	label string
	years float64
	days  int
}

var tenors = [...]tenorMeta{
	Spot:        {"Spot", 0, 0},
	OneWeek:     {"1W", 7.0 / 365.0, 7},
	OneMonth:    {"1M", 1.0 / 12.0, 30},
	TwoMonths:   {"2M", 2.0 / 12.0, 60},
	ThreeMonths: {"3M", 3.0 / 12.0, 90},
	SixMonths:   {"6M", 6.0 / 12.0, 180},
	NineMonths:  {"9M", 9.0 / 12.0, 270},
	OneYear:     {"1Y", 1.0, 365},
}

// Tenors returns every tenor in maturity order.
func Tenors() []Tenor {
	out := make([]Tenor, len(tenors))
	for i := range tenors {
		out[i] = Tenor(i)
	}
	return out
}

func (t Tenor) Valid() bool {
	return t >= Spot && int(t) < len(tenors)
}

func (t Tenor) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tenor(%d)", int(t))
	}
	return tenors[t].label
}

// Years is the time to maturity used in the IRP formula.
func (t Tenor) Years() float64 {
	if !t.Valid() {
		return 0
	}
	return tenors[t].years
}

// Days is the calendar day count to settlement.
func (t Tenor) Days() int {
	if !t.Valid() {
		return 0
	}
	return tenors[t].days
}

// SettlementDate returns the settlement date for a trade done at asOf.
func (t Tenor) SettlementDate(asOf time.Time) time.Time {
	d := asOf.AddDate(0, 0, t.Days())
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func ParseTenor(s string) (Tenor, error) {
	s = strings.TrimSpace(s)
	for i, m := range tenors {
		if strings.EqualFold(m.label, s) {
			return Tenor(i), nil
		}
	}
	return 0, fmt.Errorf("tenor %q: %w", s, ErrUnknownTenor)
}

func (t Tenor) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("tenor %d: %w", int(t), ErrUnknownTenor)
	}
	return []byte(t.String()), nil
}

func (t *Tenor) UnmarshalText(b []byte) error {
	v, err := ParseTenor(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
