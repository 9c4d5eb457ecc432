package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/s0up4200/proxy6/px6"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the proxy6 API",
	Long:  `Test the API key and display account information.`,
	RunE:  runTest,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	PersistentPreRunE: skipInit,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("proxy6 %s (built %s, %s %s/%s)\n",
			appVersion, buildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(testCmd, versionCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", cfg.PX6.BaseURL)

	resp, err := client.GetCountry(cmd.Context(), px6.GetCountryParams{})
	if err != nil {
		if px6.IsDocumented(err, px6.ErrCodeKey) {
			return fmt.Errorf("API key rejected: %w", err)
		}
		return fmt.Errorf("connection failed: %w", err)
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("\nAccount:\n")
	fmt.Printf("- User ID: %s\n", resp.UserID)
	fmt.Printf("- Balance: %s %s\n", resp.Balance, resp.Currency)
	fmt.Printf("- Countries available: %d\n", len(resp.List))

	if names := filters.ListFilters(); len(names) > 0 {
		fmt.Printf("\nFilter presets:\n")
		for _, name := range names {
			f, _ := filters.GetFilter(name)
			fmt.Printf("  • %s: %s\n", name, f.Expression())
		}
	}

	return nil
}
