package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/gotex/pkg/diff"
)

type sample struct {
	Name  string
	Count int

	hidden string
}

func TestDiffExportedOnlyEqual(t *testing.T) {
	a := sample{Name: "\\abs", Count: 1, hidden: "x"}
	b := sample{Name: "\\abs", Count: 1, hidden: "y"}

	assert.Empty(t, diff.DiffExportedOnly(a, b))
}

func TestDiffExportedOnlyDifferent(t *testing.T) {
	a := sample{Name: "\\abs", Count: 1}
	b := sample{Name: "\\norm", Count: 2}

	got := diff.DiffExportedOnly(a, b)
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "ACTUAL")
}

func TestRequireKnownValueEqual(t *testing.T) {
	a := sample{Name: "\\abs", Count: 1}
	diff.RequireKnownValueEqual(t, a, a)
}
