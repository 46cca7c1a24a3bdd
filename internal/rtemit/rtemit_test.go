package rtemit

import (
	"strings"
	"testing"

	"depyler/internal/codegen"
)

func TestEmitNothingWithoutFlags(t *testing.T) {
	if got := Emit(codegen.Flags{}); got != "" {
		t.Fatalf("Emit with no flags = %q, want empty", got)
	}
}

func TestRuntimeValueTraits(t *testing.T) {
	src := Emit(codegen.Flags{NeedsDepylerValue: true})
	for _, frag := range []string{
		"pub enum DepylerValue",
		"impl Eq for DepylerValue {}",
		"impl std::hash::Hash for DepylerValue",
		"std::mem::discriminant(self).hash(state)",
		"x.to_bits().hash(state)",
		"impl IntoIterator for DepylerValue",
		"type IntoIter = std::vec::IntoIter<DepylerValue>",
		"pub trait PyOps",
		"impl<T: Into<DepylerValue>> PyOps for T",
	} {
		if !strings.Contains(src, frag) {
			t.Fatalf("runtime source missing %q", frag)
		}
	}
}

func TestCrateDepsStrictModeEmpty(t *testing.T) {
	f := codegen.Flags{NeedsSerdeJson: true, NeedsRegex: true}
	if deps := CrateDeps(f, true); deps != nil {
		t.Fatalf("strict mode deps = %v, want none", deps)
	}
	deps := CrateDeps(f, false)
	joined := strings.Join(deps, "\n")
	if !strings.Contains(joined, `serde_json = "1"`) || !strings.Contains(joined, `regex = "1"`) {
		t.Fatalf("deps = %v", deps)
	}
}
