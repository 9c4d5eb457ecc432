package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/proxy6/px6"
)

var removeIPs bool

// ipAuthCmd represents the ipauth command
var ipAuthCmd = &cobra.Command{
	Use:   "ipauth [IP...]",
	Short: "Bind IPs used for authorization",
	Long: `Replace the list of IPs allowed to use your proxies without a password,
or remove every bound IP with --delete.`,
	RunE: runIPAuth,
}

func init() {
	ipAuthCmd.Flags().BoolVar(&removeIPs, "delete", false, "remove all bound IPs")
	rootCmd.AddCommand(ipAuthCmd)
}

func runIPAuth(cmd *cobra.Command, args []string) error {
	target := px6.DeleteIPs()
	if !removeIPs {
		addrs, err := parseIPs(args)
		if err != nil {
			return err
		}
		if len(addrs) == 0 {
			return errors.New("either IPs or --delete must be given")
		}
		target = px6.ConnectIPs(addrs...)
	}

	if _, err := client.IPAuth(cmd.Context(), px6.IPAuthParams{IP: target}); err != nil {
		return fmt.Errorf("failed to update authorized IPs: %w", err)
	}

	if target.IsDelete() {
		fmt.Println("Removed all authorized IPs")
	} else {
		fmt.Printf("Authorized IPs: %s\n", target)
	}
	return nil
}
