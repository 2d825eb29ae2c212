package internal

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// RofiSelect shows the options in a rofi dmenu. Quitting or dismissing the
// menu returns Key "-1".
func RofiSelect(options map[string]string) (SelectionOption, error) {
	config := GetGlobalConfig()
	storagePath := "${HOME}/.local/share/deckflix"
	if config != nil && config.StoragePath != "" {
		storagePath = config.StoragePath
	}

	type optionWithSeeders struct {
		label   string
		key     string
		seeders int
	}
	var optionsList []optionWithSeeders

	for key, value := range options {
		label, seeders := splitOptionValue(value)
		optionsList = append(optionsList, optionWithSeeders{
			label:   label,
			key:     key,
			seeders: seeders,
		})
	}

	sort.Slice(optionsList, func(i, j int) bool {
		if optionsList[i].seeders != optionsList[j].seeders {
			return optionsList[i].seeders > optionsList[j].seeders
		}
		return optionsList[i].label < optionsList[j].label
	})

	var sortedOptions []string
	for _, opt := range optionsList {
		sortedOptions = append(sortedOptions, opt.label)
	}
	sortedOptions = append(sortedOptions, "Quit")

	cmd := exec.Command("rofi", "-dmenu",
		"-theme", filepath.Join(os.ExpandEnv(storagePath), "select.rasi"),
		"-i", "-p", "Select")

	cmd.Stdin = strings.NewReader(strings.Join(sortedOptions, "\n"))
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return SelectionOption{}, fmt.Errorf("failed to run rofi: %w", err)
	}

	selected := strings.TrimSpace(out.String())
	switch selected {
	case "", "Quit":
		return SelectionOption{Key: "-1"}, nil
	}

	for _, opt := range optionsList {
		if opt.label == selected {
			return SelectionOption{Label: selected, Key: opt.key, Seeders: opt.seeders}, nil
		}
	}

	return SelectionOption{}, fmt.Errorf("selected option not found in original list")
}

// GetUserInputFromRofi prompts for free-form text with a custom message.
func GetUserInputFromRofi(message string) (string, error) {
	config := GetGlobalConfig()
	storagePath := "${HOME}/.local/share/deckflix"
	if config != nil && config.StoragePath != "" {
		storagePath = config.StoragePath
	}

	cmd := exec.Command("rofi", "-dmenu",
		"-theme", filepath.Join(os.ExpandEnv(storagePath), "userInput.rasi"),
		"-p", "Input", "-mesg", message)

	Debug("rofi command: %v", cmd.String())

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to run rofi: %w", err)
	}

	return strings.TrimSpace(out.String()), nil
}
