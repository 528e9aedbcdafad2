package cli

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
)

// ConfirmRemoval asks once before a batch of dumps is deleted. Answering no
// is not an error.
func ConfirmRemoval(paths []string) (bool, error) {
	for _, p := range paths {
		fmt.Fprintln(os.Stderr, p)
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Remove %d overlapped dump file(s)", len(paths)),
		IsConfirm: true,
	}
	// stdout carries command output
	prompt.Stdout = os.Stderr

	_, err := prompt.Run()
	if err == promptui.ErrAbort {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
