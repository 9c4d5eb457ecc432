package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/proxy6/px6"
)

var (
	priceCount  uint
	pricePeriod int
	countryCode string
)

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Show the cost of an order",
	Long:  `Show the total and per-proxy cost of buying the given number of proxies for a period.`,
	RunE:  runPrice,
}

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many proxies are available in a country",
	RunE:  runCount,
}

// countriesCmd represents the countries command
var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List countries available for purchase",
	RunE:  runCountries,
}

func init() {
	priceCmd.Flags().UintVarP(&priceCount, "count", "n", 1, "number of proxies")
	priceCmd.Flags().IntVarP(&pricePeriod, "period", "p", 30, "period in days")
	priceCmd.Flags().StringVar(&versionFlag, "ip-version", "", "proxy version: 4, 6 or 3 (shared)")

	countCmd.Flags().StringVarP(&countryCode, "country", "c", "", "ISO2 country code")
	countCmd.Flags().StringVar(&versionFlag, "ip-version", "", "proxy version: 4, 6 or 3 (shared)")
	_ = countCmd.MarkFlagRequired("country")

	countriesCmd.Flags().StringVar(&versionFlag, "ip-version", "", "proxy version: 4, 6 or 3 (shared)")

	rootCmd.AddCommand(priceCmd, countCmd, countriesCmd)
}

func runPrice(cmd *cobra.Command, args []string) error {
	period, err := px6.NewProxyPeriod(pricePeriod)
	if err != nil {
		return err
	}
	version, err := parseVersion(versionFlag)
	if err != nil {
		return err
	}

	resp, err := client.GetPrice(cmd.Context(), px6.GetPriceParams{
		Count:   priceCount,
		Period:  period,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("failed to get price: %w", err)
	}

	fmt.Printf("%d proxies for %d days: %s %s (%s each)\n",
		resp.Count, resp.Period, resp.Price, resp.Currency, resp.PriceSingle)
	fmt.Printf("Balance: %s %s\n", resp.Balance, resp.Currency)
	return nil
}

func runCount(cmd *cobra.Command, args []string) error {
	country, err := px6.NewCountry(countryCode)
	if err != nil {
		return err
	}
	version, err := parseVersion(versionFlag)
	if err != nil {
		return err
	}

	resp, err := client.GetCount(cmd.Context(), px6.GetCountParams{
		Country: country,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("failed to get count: %w", err)
	}

	fmt.Printf("%d proxies available in %s\n", resp.Count, strings.ToUpper(country.String()))
	return nil
}

func runCountries(cmd *cobra.Command, args []string) error {
	version, err := parseVersion(versionFlag)
	if err != nil {
		return err
	}

	resp, err := client.GetCountry(cmd.Context(), px6.GetCountryParams{Version: version})
	if err != nil {
		return fmt.Errorf("failed to get countries: %w", err)
	}

	if len(resp.List) == 0 {
		fmt.Println("No countries available.")
		return nil
	}

	fmt.Printf("%d countries available:\n", len(resp.List))
	fmt.Println(strings.ToUpper(strings.Join(resp.List, " ")))
	return nil
}
