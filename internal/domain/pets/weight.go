package pets

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	weightMaxDigits     = 4
	weightDecimalPlaces = 1
)

var (
	ErrWeightInvalid       = errors.New("A valid number is required.")
	ErrWeightMaxDigits     = fmt.Errorf("Ensure that there are no more than %d digits in total.", weightMaxDigits)
	ErrWeightDecimalPlaces = fmt.Errorf("Ensure that there are no more than %d decimal places.", weightDecimalPlaces)
	ErrWeightWholeDigits   = fmt.Errorf("Ensure that there are no more than %d digits before the decimal point.", weightMaxDigits-weightDecimalPlaces)
)

// Weight es un decimal con un dígito fraccionario, guardado en décimas.
// 12.5 => 125.
type Weight int64

// ParseWeight valida y convierte la representación textual ("12.5", "-3", "0.5").
// Mismas reglas que una columna NUMERIC(4,1).
func ParseWeight(s string) (Weight, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrWeightInvalid
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	if intPart == "" && frac == "" {
		return 0, ErrWeightInvalid
	}
	if !allDigits(intPart) || !allDigits(frac) {
		return 0, ErrWeightInvalid
	}

	whole := len(strings.TrimLeft(intPart, "0"))
	decimals := len(frac)
	total := whole + decimals
	if whole == 0 {
		total = decimals
	}

	if total > weightMaxDigits {
		return 0, ErrWeightMaxDigits
	}
	if decimals > weightDecimalPlaces {
		return 0, ErrWeightDecimalPlaces
	}
	if whole > weightMaxDigits-weightDecimalPlaces {
		return 0, ErrWeightWholeDigits
	}

	var tenths int64
	if intPart != "" {
		n, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return 0, ErrWeightInvalid
		}
		tenths = n * 10
	}
	if frac != "" {
		tenths += int64(frac[0] - '0')
	}
	if neg {
		tenths = -tenths
	}
	return Weight(tenths), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (w Weight) String() string {
	n := int64(w)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%d.%d", sign, n/10, n%10)
}

// MarshalJSON escribe un número JSON con un decimal fijo (12.0, 12.5), no el
// string ("12.5") que devuelve un DecimalField de DRF con la config por defecto.
func (w Weight) MarshalJSON() ([]byte, error) {
	return []byte(w.String()), nil
}

// Value guarda el peso como texto; NUMERIC en postgres y afinidad NUMERIC en
// sqlite lo convierten solos.
func (w Weight) Value() (driver.Value, error) {
	return w.String(), nil
}

func (w *Weight) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*w = 0
		return nil
	case int64:
		*w = Weight(v * 10)
		return nil
	case float64:
		return w.scanText(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		return w.scanText(v)
	case []byte:
		return w.scanText(string(v))
	default:
		return fmt.Errorf("weight: unsupported scan type %T", src)
	}
}

func (w *Weight) scanText(s string) error {
	parsed, err := ParseWeight(s)
	if err != nil {
		return fmt.Errorf("weight: scan %q: %w", s, err)
	}
	*w = parsed
	return nil
}
