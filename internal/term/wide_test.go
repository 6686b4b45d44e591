package term

import "testing"

func TestClusterWidthMeasuresAssembledCluster(t *testing.T) {
	if w := clusterWidth("e"); w != 1 {
		t.Errorf("clusterWidth(%q) = %d, want 1", "e", w)
	}
	if w := clusterWidth("中"); w != 2 {
		t.Errorf("clusterWidth(%q) = %d, want 2", "中", w)
	}
}

func TestVS16WideSymbolsContainsDocumentedEntries(t *testing.T) {
	for _, r := range []rune{'☀', '⚽', '❤'} {
		if !vs16WideSymbols[r] {
			t.Errorf("vs16WideSymbols missing %q", r)
		}
	}
	if vs16WideSymbols['e'] {
		t.Error("vs16WideSymbols should not contain plain ASCII letters")
	}
}

func TestIsVariationSelectorRecognizesVS16Const(t *testing.T) {
	if !isVariationSelector(vs16) {
		t.Error("vs16 constant must itself be a variation selector")
	}
}
