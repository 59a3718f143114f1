package core

import (
	"runtime"
	"strings"
)

// CallerModule returns the import path of the package containing the
// function skip frames above the caller, or "" when it cannot be resolved.
func CallerModule(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	return PackagePath(fn.Name())
}

// PackagePath extracts the package import path from a fully qualified
// function name such as "github.com/a/b/pkg.(*T).Method".
func PackagePath(funcName string) string {
	slash := strings.LastIndexByte(funcName, '/')
	dot := strings.IndexByte(funcName[slash+1:], '.')
	if dot < 0 {
		return funcName
	}
	return funcName[:slash+1+dot]
}
