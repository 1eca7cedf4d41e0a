package util

import (
	"fmt"
	"net"
	"os/exec"
	"runtime"
)

// browserCommands candidate commands for goos, most reliable first.
// rundll32 handles '&' in the url on Windows 7 and later; "cmd /c start" does not.
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		cmds := [][]string{{"xdg-open", url}}
		for _, b := range []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"} {
			cmds = append(cmds, []string{b, url})
		}
		return cmds
	}
}

// OpenBrowser opens url in the default browser, trying each candidate
// command until one starts. It returns the first failure when none does.
func OpenBrowser(url string) error {
	return startFirst(browserCommands(runtime.GOOS, url), func(name string, args ...string) error {
		return exec.Command(name, args...).Start()
	})
}

func startFirst(cmds [][]string, start func(name string, args ...string) error) error {
	var first error
	for _, c := range cmds {
		err := start(c[0], c[1:]...)
		if err == nil {
			return nil
		}
		if first == nil {
			first = fmt.Errorf("%s: %w", c[0], err)
		}
	}
	if first == nil {
		return fmt.Errorf("no browser command for %s", runtime.GOOS)
	}
	return first
}

// FindAvailablePort returns startPort if it is free, otherwise the next free
// port among the following 20. It returns 0 when none is free.
func FindAvailablePort(startPort int) int {
	for port := startPort; port < startPort+20 && port <= 65535; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			continue
		}
		_ = ln.Close()
		return port
	}
	return 0
}

// LocalURL address to open in the browser for a listen port
func LocalURL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}
