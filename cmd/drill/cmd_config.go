package main

import (
	"fmt"

	"github.com/drillhq/drill/internal/config"
)

// cmdInit performs first-time setup
func cmdInit() error {
	dir, err := config.EnsureDrillDir()
	if err != nil {
		return err
	}

	if err := config.SaveLocalConfig(config.DefaultLocalConfig()); err != nil {
		return err
	}

	fmt.Printf("Initialized %s\n\n", dir)
	fmt.Println("Next steps:")
	fmt.Println("  drill provider set-key anthropic <key>   # configure an API key")
	fmt.Println("  drill exercise list                      # see what to practice")
	return nil
}

// cmdConfig shows the merged configuration
func cmdConfig() error {
	env := config.Load()
	local, err := config.LoadLocalConfig()
	if err != nil {
		return err
	}

	fmt.Println("Configuration")
	fmt.Println("=============")
	fmt.Printf("Default provider:  %s\n", local.LLM.DefaultProvider)
	fmt.Printf("Exercises path:    %s\n", env.ExercisesPath)
	fmt.Printf("Sandbox timeout:   %s\n", env.SandboxTimeout)
	fmt.Println("\nProviders:")
	for name, pc := range local.LLM.Providers {
		status := "disabled"
		if pc.Enabled {
			status = "enabled"
			if pc.APIKey == "" && name != "ollama" {
				status = "enabled (no API key)"
			}
		}
		fmt.Printf("  %-10s %-22s model=%s\n", name, status, pc.Model)
	}
	return nil
}

// cmdProvider manages LLM providers
func cmdProvider(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Provider commands:

  drill provider list                  List configured providers
  drill provider set-key <name> <key>  Store an API key in ~/.drill/secrets.yaml`)
		return nil
	}

	switch args[0] {
	case "list":
		return cmdConfig()
	case "set-key":
		if len(args) < 3 {
			return fmt.Errorf("usage: drill provider set-key <name> <key>")
		}
		return cmdProviderSetKey(args[1], args[2])
	default:
		return fmt.Errorf("unknown provider command: %s", args[0])
	}
}

func cmdProviderSetKey(name, key string) error {
	local, err := config.LoadLocalConfig()
	if err != nil {
		return err
	}
	if _, ok := local.LLM.Providers[name]; !ok {
		return fmt.Errorf("unknown provider: %s", name)
	}

	secrets := make(map[string]string)
	for pname, pc := range local.LLM.Providers {
		if pc.APIKey != "" {
			secrets[pname] = pc.APIKey
		}
	}
	secrets[name] = key

	if err := config.SaveSecrets(secrets); err != nil {
		return err
	}
	fmt.Printf("Stored API key for %s\n", name)
	return nil
}
