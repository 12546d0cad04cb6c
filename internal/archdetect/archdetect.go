// Package archdetect supplies the one boolean input the weak-CAS shim needs:
// whether the running target is a weakly-ordered architecture. The full
// architecture-detection matrix (per-vendor feature bits, microarchitecture
// quirks) is out of scope for this module — the contract here is exactly
// the one spec.md §1 hands to this collaborator: given a target identifier,
// say whether it is weakly ordered.
package archdetect

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// strongArches lists identifiers known to provide total-store-order (TSO)
// or stronger guarantees, mirroring WeakOpt.Arch.isWeak()'s x86/amd64 case.
var strongArches = map[string]bool{
	"amd64": true,
	"386":   true,
}

// weakArches lists identifiers that require the retry-on-opaque-reread
// treatment in weakcas. Mirrors the processor table in WeakOpt.java.
var weakArches = map[string]bool{
	"arm":     true,
	"arm64":   true,
	"ppc64":   true,
	"ppc64le": true,
	"riscv64": true,
	"mips":    true,
	"mipsle":  true,
	"mips64":  true,
	"mips64le": true,
	"loong64": true,
	"s390x":   false, // z/Architecture is strongly ordered; listed explicitly, not inferred.
}

// WeaklyOrdered reports whether goarch (a GOARCH-style identifier, e.g.
// "arm64", "amd64") should be treated as weakly ordered by the shim. The
// lookup is a pure function of the identifier so it can be exercised in
// tests without touching process-global state.
func WeaklyOrdered(goarch string) bool {
	goarch = strings.ToLower(strings.TrimSpace(goarch))
	if strong, ok := strongArches[goarch]; ok {
		return !strong
	}
	if weak, ok := weakArches[goarch]; ok {
		return weak
	}
	// Unknown identifier: default to the conservative choice and treat it
	// as weakly ordered, since a spurious weak-CAS retry is always
	// correct (merely redundant) on a target that turns out to be TSO.
	return true
}

// Default reports whether the process's own GOARCH is weakly ordered. arm64
// is refined past the coarse GOARCH split: a core with the ARMv8.1 LSE
// atomic extensions (cpu.ARM64.HasATOMICS) executes CompareAndSwap as a
// single CASAL instruction instead of an LL/SC retry loop, giving it the
// same non-spurious, strongly-ordered CAS semantics WeakOpt.Arch.isWeak()
// reserves for x86 — so such a core is reported as strongly ordered even
// though its GOARCH is arm64.
func Default() bool {
	weak := WeaklyOrdered(runtime.GOARCH)
	if runtime.GOARCH == "arm64" && cpu.ARM64.HasATOMICS {
		weak = false
	}
	return weak
}
