// Package form models the single-screen converter form as an immutable value.
// Every operation returns a new State and leaves its input untouched; the caller owns mutation.
package form

import (
	"context"

	"go-currency-converter/convert"
	"go-currency-converter/domain"
)

// State the contents of the converter form
type State struct {
	// Amount raw text typed by the user
	Amount string
	Base   domain.Currency
	Target domain.Currency
	// Result last displayed result or error message, empty until the first conversion
	Result string
	Dark   bool
}

// New returns the initial form, converting USD to EUR
func New() State {
	return State{Base: "USD", Target: "EUR"}
}

func (s State) WithAmount(amount string) State {
	s.Amount = amount
	return s
}

func (s State) WithBase(base domain.Currency) State {
	s.Base = base
	return s
}

func (s State) WithTarget(target domain.Currency) State {
	s.Target = target
	return s
}

// Convert runs a conversion for the current selections and stores the display text in Result.
func Convert(ctx context.Context, svc convert.Service, s State) State {
	ex, err := svc.Convert(ctx, s.Amount, s.Base, s.Target)
	if err != nil {
		s.Result = domain.Message(err)
		return s
	}
	s.Result = ex.String()
	return s
}

// Swap exchanges base and target. The previous Result is kept until the next Convert.
func Swap(s State) State {
	s.Base, s.Target = domain.Swap(s.Base, s.Target)
	return s
}

// ToggleTheme flips between light and dark mode
func ToggleTheme(s State) State {
	s.Dark = !s.Dark
	return s
}

// ThemeName "Dark Mode" or "Light Mode"
func (s State) ThemeName() string {
	if s.Dark {
		return "Dark Mode"
	}
	return "Light Mode"
}
