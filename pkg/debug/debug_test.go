package debug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/gotex/pkg/debug"
)

func TestGetPackageAndFuncFromFuncName(t *testing.T) {
	tests := []struct {
		name     string
		funcName string
		wantPkg  string
		wantFunc string
	}{
		{
			name:     "plain function",
			funcName: "github.com/walteh/gotex/pkg/lexer.Tokenize",
			wantPkg:  "github.com/walteh/gotex/pkg/lexer",
			wantFunc: "Tokenize",
		},
		{
			name:     "method on pointer receiver",
			funcName: "github.com/walteh/gotex/pkg/preparse.(*TokenIter).Next",
			wantPkg:  "github.com/walteh/gotex/pkg/preparse",
			wantFunc: "(*TokenIter).Next",
		},
		{
			name:     "main package",
			funcName: "main.run",
			wantPkg:  "main",
			wantFunc: "run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, fn := debug.GetPackageAndFuncFromFuncName(tt.funcName)
			assert.Equal(t, tt.wantPkg, pkg)
			assert.Equal(t, tt.wantFunc, fn)
		})
	}
}

func TestFormatCaller(t *testing.T) {
	got := debug.FormatCaller("github.com/walteh/gotex/pkg/lexer", "/home/u/gotex/pkg/lexer/tokenizer.go", 42, false)
	assert.Equal(t, "github.com/walteh/gotex/pkg/lexer:tokenizer.go:42", got)
}

func TestFileNameOfPath(t *testing.T) {
	assert.Equal(t, "tokenizer.go", debug.FileNameOfPath("pkg/lexer/tokenizer.go"))
	assert.Equal(t, "main.go", debug.FileNameOfPath("main.go"))
}
