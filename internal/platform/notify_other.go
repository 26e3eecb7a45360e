//go:build !linux && !darwin

package platform

func systemNotifier() (string, func(title, body string) []string) {
	return "", nil
}
