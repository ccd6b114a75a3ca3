//go:build !darwin

package notify

// Send is a no-op on non-darwin platforms
func Send(title, message string) error {
	return nil
}

// SendNextTask is a no-op on non-darwin platforms
func SendNextTask(epic, id, name string, ready int) error {
	return nil
}
