// Package profile starts optional runtime profiling backed by
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//
// Otherwise [Start] is a no-op and [Modes] is empty. The CLI exposes it as
// the --pprof-mode and --pprof-dir flags:
//
//	bulba --pprof-mode=cpu --pprof-dir=/tmp/prof check app.bulba
//	go tool pprof -http=: /tmp/prof/cpu.pprof
//
// With the tag set, the [net/http/pprof] handlers are also registered on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
