package util

import (
	"fmt"
	"os/exec"
	"runtime"
)

// 各平台打开 URL 的命令，按顺序尝试
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		// rundll32 在 Windows 7 上比 cmd /c start 稳定
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		return [][]string{
			{"xdg-open", url},
			{"sensible-browser", url},
			{"google-chrome", url},
			{"firefox", url},
		}
	}
}

// OpenBrowser 用默认浏览器打开看板地址
func OpenBrowser(url string) error {
	return openWith(browserCommands(runtime.GOOS, url), func(name string, args ...string) error {
		return exec.Command(name, args...).Start()
	})
}

func openWith(cmds [][]string, start func(name string, args ...string) error) error {
	var firstErr error
	for _, cmd := range cmds {
		err := start(cmd[0], cmd[1:]...)
		if err == nil {
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("no browser command for %s", runtime.GOOS)
	}
	return fmt.Errorf("open browser: %w", firstErr)
}

// DashboardURL 本地看板地址
func DashboardURL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}
