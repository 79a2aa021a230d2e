package record

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestInt(t *testing.T) {
	params := Params{"a": 3, "b": 4.0, "c": json.Number("5"), "d": "x"}

	tests := []struct {
		key     string
		want    int
		wantErr bool
	}{
		{"a", 3, false},
		{"b", 4, false},
		{"c", 5, false},
		{"missing", 7, false},
		{"d", 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := Int(params, tt.key, 7)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Int() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Int() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBool(t *testing.T) {
	params := Params{"t": true, "one": 1.0, "zero": 0, "bad": "yes"}

	for key, want := range map[string]bool{"t": true, "one": true, "zero": false, "missing": false} {
		got, err := Bool(params, key)
		if err != nil || got != want {
			t.Errorf("Bool(%q) = %v, %v, want %v", key, got, err, want)
		}
	}
	if _, err := Bool(params, "bad"); !errors.Is(err, ErrType) {
		t.Errorf("Bool(bad) error = %v, want ErrType", err)
	}
}

func TestFloats(t *testing.T) {
	params := Params{
		"native": []float64{1, 2},
		"json":   []interface{}{1.5, 2.0},
		"mixed":  []interface{}{1.0, "x"},
	}

	if got, ok, err := Floats(params, "native"); err != nil || !ok || len(got) != 2 {
		t.Errorf("Floats(native) = %v, %v, %v", got, ok, err)
	}
	if got, ok, err := Floats(params, "json"); err != nil || !ok || got[0] != 1.5 {
		t.Errorf("Floats(json) = %v, %v, %v", got, ok, err)
	}
	if _, ok, err := Floats(params, "missing"); err != nil || ok {
		t.Errorf("Floats(missing) ok = %v, err = %v", ok, err)
	}
	if _, _, err := Floats(params, "mixed"); !errors.Is(err, ErrType) {
		t.Errorf("Floats(mixed) error = %v, want ErrType", err)
	}
}

func TestRecords(t *testing.T) {
	params := Params{
		"list":  []interface{}{map[string]interface{}{"a": 1}},
		"typed": []map[string]interface{}{{"a": 1}},
		"bad":   []interface{}{1},
	}

	for _, key := range []string{"list", "typed"} {
		got, err := Records(params, key)
		if err != nil || len(got) != 1 {
			t.Errorf("Records(%q) = %v, %v", key, got, err)
		}
	}
	if got, err := Records(params, "missing"); err != nil || got != nil {
		t.Errorf("Records(missing) = %v, %v", got, err)
	}
	if _, err := Records(params, "bad"); !errors.Is(err, ErrType) {
		t.Errorf("Records(bad) error = %v, want ErrType", err)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		in      interface{}
		want    int
		wantErr bool
	}{
		{"int", 7, 7, false},
		{"float", 7.0, 7, false},
		{"string", "12", 12, false},
		{"json number", json.Number("3"), 3, false},
		{"fraction", 1.5, 0, true},
		{"word", "seven", 0, true},
		{"slice", []int{1}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInt(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseInt() = %d, want %d", got, tt.want)
			}
		})
	}
}
