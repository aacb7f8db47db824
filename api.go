package apiresolve

import (
	"github.com/carved4/go-apiresolve/pkg/obf"
	"github.com/carved4/go-apiresolve/pkg/resolve"
)

var GetHash = obf.GetHash
var GetSymbolHash = obf.GetSymbolHash

// ResolveExport resolves an export name against a mapped image base.
// The compare is exact and case sensitive; the zero return collapses
// "symbol absent" and "malformed image" into one sentinel.
var ResolveExport = resolve.ResolveExport

// GetFunctionAddress is the hash-keyed variant of ResolveExport.
var GetFunctionAddress = resolve.GetFunctionAddress

var ListExports = resolve.ListExports
var ExportsFromImage = resolve.ExportsFromImage
var CheckImage = resolve.CheckImage
