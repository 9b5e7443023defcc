package dashboard

import "testing"

func TestLaunchers(t *testing.T) {
	t.Parallel()
	for _, goos := range []string{"darwin", "linux", "windows"} {
		argv, ok := launchers[goos]
		if !ok || len(argv) == 0 || argv[0] == "" {
			t.Errorf("launchers[%q] = %v, want a command", goos, argv)
		}
	}
}
