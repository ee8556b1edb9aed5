// Package diff renders readable value diffs for test failures.
package diff

import (
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/require"
)

func DiffExportedOnly[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)
	abc := diff.Diff(printer.Sprint(got), printer.Sprint(want))
	if abc == "" {
		return ""
	}
	str := "\n\n"
	str += "to convert ACTUAL ⏩️ EXPECTED:\n\n"
	str += "add:    ➕\n"
	str += "remove: ➖\n"
	str += "\n"
	str += strings.ReplaceAll(strings.ReplaceAll(abc, "\n-", "\n➖"), "\n+", "\n➕")

	return str
}

// RequireKnownValueEqual fails the test with a rendered diff when the
// exported fields of want and got differ.
func RequireKnownValueEqual[T any](t require.TestingT, want T, got T) {
	d := DiffExportedOnly(want, got)
	require.Empty(t, d, "values differ%s", d)
}
