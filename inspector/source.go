package inspector

import "os"

// readSource reads a source file for display
func readSource(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided G-code file path
	if err != nil {
		return "", err
	}
	return string(content), nil
}
