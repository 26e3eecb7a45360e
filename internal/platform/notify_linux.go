package platform

import "os/exec"

func systemNotifier() (string, func(title, body string) []string) {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return "", nil
	}
	return path, func(title, body string) []string {
		return []string{"--app-name=peak", title, body}
	}
}
