package usecase

import "testing"

func TestAstronomyTipsSubstringMatch(t *testing.T) {
	tips := AstronomyTips("Mars dust storms")

	if len(tips) != 3 {
		t.Fatalf("expected 3 mars tips, got %d", len(tips))
	}
	if tips[0] != tipTable["mars"][0] {
		t.Errorf("expected the mars list, got %q", tips[0])
	}
}

func TestAstronomyTipsCaseInsensitive(t *testing.T) {
	tips := AstronomyTips("NEBULA photography")
	if tips[0] != tipTable["nebula"][0] {
		t.Errorf("expected the nebula list, got %q", tips[0])
	}
}

func TestAstronomyTipsDefault(t *testing.T) {
	tips := AstronomyTips("black holes")
	if tips[0] != tipTable["default"][0] {
		t.Errorf("expected the default list, got %q", tips[0])
	}
}

func TestAstronomyTipsMatchOrder(t *testing.T) {
	// Both nebula and mars appear; nebula is checked first.
	tips := AstronomyTips("nebula near mars")
	if tips[0] != tipTable["nebula"][0] {
		t.Errorf("expected nebula to win the ordered match, got %q", tips[0])
	}
}
