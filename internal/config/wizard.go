package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config plus the admin password to seed the site record with
// (empty if the operator kept the default). It also saves the config to
// the given path.
func RunWizard(path string) (*Config, string, error) {
	fmt.Println("Welcome to reportdeck! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, "", fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Data directory (SQLite database and uploaded assets).
	dataPrompt := promptui.Prompt{
		Label:   "Data directory",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, "", fmt.Errorf("data directory prompt: %w", err)
	}

	// 3. Public base URL used in uploaded asset links.
	basePrompt := promptui.Prompt{
		Label:   "Public base URL (empty for localhost)",
		Default: "",
	}
	if cfg.BaseURL, err = basePrompt.Run(); err != nil {
		return nil, "", fmt.Errorf("base URL prompt: %w", err)
	}

	// 4. Admin password seed. Empty keeps the built-in default.
	pwdPrompt := promptui.Prompt{
		Label: "Admin password (empty to keep default)",
		Mask:  '*',
	}
	adminPassword, err := pwdPrompt.Run()
	if err != nil {
		return nil, "", fmt.Errorf("password prompt: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	if err := cfg.Save(path); err != nil {
		return nil, "", err
	}

	fmt.Printf("\nConfiguration written to %s\n", path)
	return cfg, adminPassword, nil
}
