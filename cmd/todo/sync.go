// ABOUTME: Sync subcommands for the Charm KV backend.
// ABOUTME: Provides status, link, now, and reset.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harper/todo/internal/charm"
	"github.com/harper/todo/internal/config"
	"github.com/spf13/cobra"
)

var noStore = map[string]string{skipStore: "true"}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Manage Charm sync",
	Long: `Sync todos through a Charm server when the charm backend is selected.

Charm uses SSH key authentication, no passwords needed.

Examples:
  todo sync status
  todo sync link --host charm.example.com
  todo sync now
  todo --backend charm list`,
}

var syncStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show sync status",
	Annotations: noStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.ConfigPath()
		}

		client, err := newCharmClient(cfg)
		if err != nil {
			return err
		}

		fmt.Println("Charm Sync Status")
		fmt.Println(strings.Repeat("-", 40))
		fmt.Printf("Config:    %s\n", configPath)
		fmt.Printf("Backend:   %s\n", cfg.Backend)
		fmt.Printf("Host:      %s\n", valueOrNone(cfg.CharmHost))
		if client.AutoSync() {
			fmt.Printf("Auto-sync: %s\n", color.GreenString("enabled"))
		} else {
			fmt.Printf("Auto-sync: %s\n", color.YellowString("disabled"))
		}
		if threshold := client.StaleThreshold(); threshold > 0 {
			fmt.Printf("Stale:     sync reads older than %s\n", threshold)
		}
		if id, err := client.ID(); err == nil {
			fmt.Printf("Device ID: %s\n", id)
		}

		if last := client.LastSyncTime(); !last.IsZero() {
			fmt.Printf("Last sync: %s\n", last.Local().Format(time.RFC1123))
		}

		user, err := client.User()
		fmt.Println()
		if err != nil || user == nil {
			fmt.Printf("Status:    %s\n", color.YellowString("not linked"))
			fmt.Println("\nRun 'todo sync link' to connect.")
			return nil
		}
		fmt.Printf("User ID:   %s\n", user.CharmID)
		fmt.Printf("Name:      %s\n", valueOrNone(user.Name))
		fmt.Printf("Status:    %s\n", color.GreenString("connected"))
		return nil
	},
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Connect to a Charm server",
	Annotations: noStore,
	Long: `Link this device to a Charm server.

On first link you'll see a code to verify on another device, or a new
account is created for your SSH key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _ := cmd.Flags().GetString("host")
		configPath, _ := cmd.Flags().GetString("config")

		if host != "" {
			if configPath == "" {
				configPath = config.ConfigPath()
			}
			fileCfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			fileCfg.CharmHost = host
			if err := config.Save(fileCfg, configPath); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			cfg.CharmHost = host
		}

		client, err := newCharmClient(cfg)
		if err != nil {
			return err
		}
		if err := client.Link(); err != nil {
			return fmt.Errorf("link failed: %w", err)
		}

		user, err := client.User()
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		color.Green("\n✓ Linked to %s", cfg.CharmHost)
		fmt.Printf("  User ID: %s\n", user.CharmID)
		if user.Name != "" {
			fmt.Printf("  Name:    %s\n", user.Name)
		}
		fmt.Println("\nUse '--backend charm' or set backend in the config to store todos there.")
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:         "now",
	Short:       "Sync with the Charm server immediately",
	Annotations: noStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newCharmClient(cfg)
		if err != nil {
			return err
		}
		if err := client.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		color.Green("✓ Synced")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Reset local sync data",
	Annotations: noStore,
	Long: `Reset the local KV database while keeping server data intact.

The next command using the charm backend pulls everything again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will reset local sync data.")
		fmt.Println("Server data will be preserved and re-synced.")
		fmt.Print("\nContinue? [y/N]: ")

		reader := bufio.NewReader(os.Stdin)
		confirmation, _ := reader.ReadString('\n')
		confirmation = strings.TrimSpace(strings.ToLower(confirmation))
		if confirmation != "y" && confirmation != "yes" {
			fmt.Println("Aborted.")
			return nil
		}

		if err := charmkv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.Green("✓ Local sync data reset")
		return nil
	},
}

func init() {
	syncLinkCmd.Flags().String("host", "", "Charm server host")

	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncResetCmd)

	rootCmd.AddCommand(syncCmd)
}

// valueOrNone returns "(not set)" if the string is empty.
func valueOrNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
