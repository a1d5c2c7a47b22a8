package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Scalar is a nullable JSON scalar passed through to a sqlite column as-is.
// The zero value is NULL, which is also what an absent JSON field decodes to.
type Scalar struct {
	v any // nil, string, int64 or float64
}

func String(s string) Scalar { return Scalar{v: s} }
func Int(n int64) Scalar     { return Scalar{v: n} }
func Float(f float64) Scalar { return Scalar{v: f} }

func (s Scalar) IsNull() bool { return s.v == nil }

// Raw returns the underlying value: nil, string, int64 or float64.
func (s Scalar) Raw() any { return s.v }

// Text renders the value the way sqlite would cast it to TEXT; NULL is "".
func (s Scalar) Text() string {
	switch x := s.v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func (s *Scalar) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch x := raw.(type) {
	case nil:
		s.v = nil
	case string:
		s.v = x
	case bool:
		// sqlite has no boolean type and the column values are stored as given
		return fmt.Errorf("scalar: boolean %t has no sqlite value", x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			s.v = n
			return nil
		}
		f, err := x.Float64()
		if err != nil {
			return fmt.Errorf("scalar number %s: %w", x, err)
		}
		s.v = f
	default:
		return fmt.Errorf("expected a scalar, got %T", raw)
	}
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.v)
}

// Value implements driver.Valuer.
func (s Scalar) Value() (driver.Value, error) {
	return s.v, nil
}

// Scan implements sql.Scanner.
func (s *Scalar) Scan(src any) error {
	switch x := src.(type) {
	case nil:
		s.v = nil
	case string:
		s.v = x
	case []byte:
		s.v = string(x)
	case int64:
		s.v = x
	case float64:
		s.v = x
	case bool:
		if x {
			s.v = int64(1)
		} else {
			s.v = int64(0)
		}
	default:
		return fmt.Errorf("scan scalar from %T", src)
	}
	return nil
}

// RowID is an INTEGER PRIMARY KEY value from the source. Like sqlite's own
// column affinity it accepts an integral number or a string holding one;
// anything else is rejected.
type RowID int64

func (id *RowID) UnmarshalJSON(b []byte) error {
	var s Scalar
	if err := s.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("row id: %w", err)
	}

	switch x := s.v.(type) {
	case int64:
		*id = RowID(x)
		return nil
	case float64:
		if x == math.Trunc(x) && x >= math.MinInt64 && x < math.MaxInt64 {
			*id = RowID(x)
			return nil
		}
	case string:
		if n, err := strconv.ParseInt(x, 10, 64); err == nil {
			*id = RowID(n)
			return nil
		}
	case nil:
		return fmt.Errorf("row id: null")
	}
	return fmt.Errorf("row id: %s is not an integer", b)
}
