package fixer

import (
	"reflect"
	"testing"
)

func TestCompose_DefaultsToPharThroughPHP(t *testing.T) {
	cfg := Config{Parameters: "fix --level=psr2 --dry-run --diff"}

	got := Compose(cfg, "src/a.php")
	want := []string{"php", "php-cs-fixer.phar", "fix", "--level=psr2", "--dry-run", "--diff", "src/a.php"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCompose_FixerPathOverride(t *testing.T) {
	cfg := Config{FixerPath: "/usr/local/bin/php-cs-fixer", Parameters: "fix"}

	got := Compose(cfg, "a.php")
	want := []string{"/usr/local/bin/php-cs-fixer", "fix", "a.php"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCompose_ProjectParametersReplaceGlobal(t *testing.T) {
	cfg := Config{
		FixerPath:         "fixer",
		Parameters:        "fix --level=psr2",
		ProjectParameters: "fix --level=psr1",
	}

	got := Compose(cfg, "a.php")
	want := []string{"fixer", "fix", "--level=psr1", "a.php"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCompose_EmptyProjectParametersUseGlobal(t *testing.T) {
	cfg := Config{FixerPath: "fixer", Parameters: "fix --level=psr2", ProjectParameters: "  "}

	got := Compose(cfg, "a.php")
	want := []string{"fixer", "fix", "--level=psr2", "a.php"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCompose_TargetAlwaysLast(t *testing.T) {
	cfg := Config{FixerPath: "fixer", Parameters: "fix --dry-run"}

	got := Compose(cfg, "deep/nested/file.php")
	if got[len(got)-1] != "deep/nested/file.php" {
		t.Errorf("expected target as final argument, got %v", got)
	}
}

func TestCompose_Deterministic(t *testing.T) {
	cfg := Config{Parameters: "fix --level=psr2 --dry-run --diff", ProjectParameters: "fix -v"}

	first := Compose(cfg, "a.php")
	second := Compose(cfg, "a.php")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("composition not deterministic: %v vs %v", first, second)
	}
}
