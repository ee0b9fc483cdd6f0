package mask_test

import (
	"math"
	"testing"

	"golang.org/x/text/language"

	"github.com/goliatone/go-formstate/pkg/mask"
	"github.com/goliatone/go-formstate/pkg/model"
)

func TestMoneyToDisplay(t *testing.T) {
	cases := []struct {
		raw  any
		want string
	}{
		{raw: int64(1000), want: "10,00"},
		{raw: 0, want: "0,00"},
		{raw: 5, want: "0,05"},
		{raw: int64(123456), want: "1.234,56"},
		{raw: int64(-250), want: "-2,50"},
		{raw: "990", want: "9,90"},
	}
	for _, tc := range cases {
		if got := mask.ToDisplay(model.FieldTypeMoney, tc.raw); got != tc.want {
			t.Fatalf("ToDisplay(money, %v) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestMoneyToRaw(t *testing.T) {
	cases := map[string]int64{
		"10,00":       1000,
		"R$ 1.234,56": 123456,
		"":            0,
		"abc":         0,
		"0,0":         0,
		"1":           1,
	}
	for display, want := range cases {
		got := mask.ToRaw(model.FieldTypeMoney, display)
		if got != want {
			t.Fatalf("ToRaw(money, %q) = %v, want %d", display, got, want)
		}
	}

	if got := mask.ToRaw(model.FieldTypeMoney, "99999999999999999999"); got != int64(math.MaxInt64) {
		t.Fatalf("expected overflow to saturate, got %v", got)
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	samples := []int64{0, 1, 9, 10, 99, 100, 101, 1000, 4990, 123456, 1000000, 987654321, math.MaxInt64}
	for c := int64(0); c < 2000; c += 7 {
		samples = append(samples, c)
	}

	registries := map[string]*mask.Registry{
		"pt-BR": mask.Default(),
		"en":    mask.NewRegistry(mask.WithLocale(language.English)),
		"de":    mask.NewRegistry(mask.WithLocale(language.German)),
	}
	for locale, registry := range registries {
		for _, c := range samples {
			display := registry.ToDisplay(model.FieldTypeMoney, c)
			if got := registry.ToRaw(model.FieldTypeMoney, display); got != c {
				t.Fatalf("%s: round trip of %d via %q returned %v", locale, c, display, got)
			}
		}
	}
}

func TestMoneyLocale(t *testing.T) {
	registry := mask.NewRegistry(mask.WithLocale(language.English))
	if got := registry.ToDisplay(model.FieldTypeMoney, 123456); got != "1,234.56" {
		t.Fatalf("expected english grouping, got %q", got)
	}
}

func TestIdentityTypes(t *testing.T) {
	for _, typ := range []model.FieldType{model.FieldTypeText, model.FieldTypeEmail, model.FieldTypePassword} {
		if mask.Default().HasMask(typ) {
			t.Fatalf("expected %s to have no mask", typ)
		}
		if got := mask.ToDisplay(typ, "Plano Ouro"); got != "Plano Ouro" {
			t.Fatalf("ToDisplay(%s) = %q", typ, got)
		}
		if got := mask.ToRaw(typ, "1.000,00"); got != "1.000,00" {
			t.Fatalf("ToRaw(%s) = %v", typ, got)
		}
	}
	if !mask.Default().HasMask(model.FieldTypeMoney) {
		t.Fatalf("expected money to be masked")
	}
	if got := mask.ToDisplay(model.FieldTypeText, nil); got != "" {
		t.Fatalf("expected nil to display empty, got %q", got)
	}
}

type upper struct{}

func (upper) ToDisplay(raw any) string  { s, _ := raw.(string); return s + "!" }
func (upper) ToRaw(display string) any { return display[:len(display)-1] }

func TestRegistry_CustomMask(t *testing.T) {
	registry := mask.NewRegistry(mask.WithMask(model.FieldTypeText, upper{}))
	if got := registry.ToDisplay(model.FieldTypeText, "hi"); got != "hi!" {
		t.Fatalf("custom display = %q", got)
	}
	if got := registry.ToRaw(model.FieldTypeText, "hi!"); got != "hi" {
		t.Fatalf("custom raw = %v", got)
	}

	registry.Register(model.FieldTypeMoney, nil)
	if registry.HasMask(model.FieldTypeMoney) {
		t.Fatalf("expected money mask removal")
	}
}
