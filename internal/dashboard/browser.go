package dashboard

import (
	"fmt"
	"os/exec"
	"runtime"
)

// launchers maps GOOS to the command that hands a URL to the desktop.
var launchers = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"freebsd": {"xdg-open"},
	"openbsd": {"xdg-open"},
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
}

// OpenBrowser shows the dashboard at url in the desktop browser, as
// requested by server.open_browser (--open). It does not wait for the
// browser to exit.
func OpenBrowser(url string) error {
	argv, ok := launchers[runtime.GOOS]
	if !ok {
		return fmt.Errorf("open browser: no launcher for %s", runtime.GOOS)
	}
	cmd := exec.Command(argv[0], append(argv[1:], url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %s: %w", argv[0], err)
	}
	go cmd.Wait() //nolint:errcheck // reap only
	return nil
}
