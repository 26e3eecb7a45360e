package platform

import (
	"fmt"
	"os/exec"
	"strconv"
)

func systemNotifier() (string, func(title, body string) []string) {
	path, err := exec.LookPath("osascript")
	if err != nil {
		return "", nil
	}
	return path, func(title, body string) []string {
		script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(body), strconv.Quote(title))
		return []string{"-e", script}
	}
}
