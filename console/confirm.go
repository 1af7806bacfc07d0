package console

import (
	"fmt"
	"strings"
)

func Confirm(prompt string) bool {
	fmt.Printf("%s [y/n]: ", prompt)
	var response string
	_, err := fmt.Scanln(&response)
	if err != nil {
		fmt.Println("Error reading response:", err)
		return false
	}

	validResponses := []string{"yes", "yep", "y"}
	for _, vr := range validResponses {
		if strings.EqualFold(response, vr) {
			return true
		}
	}

	return false
}

// Prompt reads a single line of input after printing the label.
func Prompt(label string) (string, error) {
	fmt.Printf("%s: ", label)
	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return "", fmt.Errorf("fmt.Scanln: %w", err)
	}
	return strings.TrimSpace(response), nil
}
