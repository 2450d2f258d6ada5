package clierrors

import (
	"errors"
	"fmt"
	"io"

	"github.com/brimdata/span/derive"
	"github.com/fatih/color"
	"go.uber.org/multierr"
)

var errorLabel = color.New(color.FgRed, color.Bold)

// Errors splits err into the individual failures it combines.
func Errors(err error) []error {
	var out []error
	for _, err := range multierr.Errors(err) {
		var list derive.ErrorList
		if errors.As(err, &list) {
			for _, e := range list {
				out = append(out, e)
			}
			continue
		}
		out = append(out, err)
	}
	return out
}

// Print writes each failure in err to w.  Shape errors are followed by
// the offending source line.
func Print(w io.Writer, err error) {
	for _, err := range Errors(err) {
		errorLabel.Fprint(w, "error:")
		fmt.Fprintf(w, " %s\n", err)
		var derr *derive.Error
		if errors.As(err, &derr) {
			if src := derr.Source(); src != "" {
				fmt.Fprintln(w, src)
			}
		}
	}
}
