package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/proxy6/px6"
)

var (
	orderCount   uint
	orderPeriod  int
	orderCountry string
	orderType    string
	orderDescr   string
	autoProlong  bool
)

// buyCmd represents the buy command
var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buy proxies",
	Long: `Buy proxies in a country. The price is shown and confirmed before the
order is placed unless --no-confirm is given.`,
	RunE: runBuy,
}

// prolongCmd represents the prolong command
var prolongCmd = &cobra.Command{
	Use:   "prolong ID...",
	Short: "Extend proxies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProlong,
}

func init() {
	buyCmd.Flags().UintVarP(&orderCount, "count", "n", 1, "number of proxies")
	buyCmd.Flags().IntVarP(&orderPeriod, "period", "p", 30, "period in days")
	buyCmd.Flags().StringVarP(&orderCountry, "country", "c", "", "ISO2 country code")
	buyCmd.Flags().StringVar(&versionFlag, "ip-version", "", "proxy version: 4, 6 or 3 (shared)")
	buyCmd.Flags().StringVarP(&orderType, "type", "t", "", "http or socks")
	buyCmd.Flags().StringVar(&orderDescr, "descr", "", "technical comment")
	buyCmd.Flags().BoolVar(&autoProlong, "auto-prolong", false, "prolong automatically before expiry")
	buyCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
	_ = buyCmd.MarkFlagRequired("country")

	prolongCmd.Flags().IntVarP(&orderPeriod, "period", "p", 30, "period in days")
	prolongCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(buyCmd, prolongCmd)
}

func buildBuyParams() (px6.BuyParams, error) {
	var params px6.BuyParams

	period, err := px6.NewProxyPeriod(orderPeriod)
	if err != nil {
		return params, err
	}
	country, err := px6.NewCountry(orderCountry)
	if err != nil {
		return params, err
	}
	version, err := parseVersion(versionFlag)
	if err != nil {
		return params, err
	}
	typ, err := parseType(orderType)
	if err != nil {
		return params, err
	}
	description, err := parseDescription(orderDescr)
	if err != nil {
		return params, err
	}

	return px6.BuyParams{
		Count:       orderCount,
		Period:      period,
		Country:     country,
		Version:     version,
		Type:        typ,
		Description: description,
		AutoProlong: autoProlong,
	}, nil
}

func runBuy(cmd *cobra.Command, args []string) error {
	params, err := buildBuyParams()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	price, err := client.GetPrice(ctx, px6.GetPriceParams{
		Count:   params.Count,
		Period:  params.Period,
		Version: params.Version,
	})
	if err != nil {
		return fmt.Errorf("failed to get price: %w", err)
	}

	question := fmt.Sprintf("Buy %d proxies in %s for %s days at %s %s (balance %s)?",
		params.Count, strings.ToUpper(params.Country.String()), params.Period,
		price.Price, price.Currency, price.Balance)
	if !confirm(question) {
		logger.Info().Msg("Purchase cancelled")
		return nil
	}

	resp, err := client.Buy(ctx, params)
	if err != nil {
		if px6.IsDocumented(err, px6.ErrCodeNoMoney) {
			return fmt.Errorf("insufficient balance: %w", err)
		}
		return fmt.Errorf("failed to buy proxies: %w", err)
	}

	logger.Info().
		Str("order_id", resp.OrderID.String()).
		Uint("count", uint(resp.Count)).
		Str("price", resp.Price.String()).
		Msg("Order placed")

	fmt.Printf("Order %s: %d proxies, %s %s\n", resp.OrderID, resp.Count, resp.Price, resp.Currency)
	for _, p := range resp.List.Sorted() {
		printProxy(p)
	}
	return nil
}

func runProlong(cmd *cobra.Command, args []string) error {
	period, err := px6.NewProxyPeriod(orderPeriod)
	if err != nil {
		return err
	}

	ids := parseIDs(args)
	if !confirm(fmt.Sprintf("Prolong %d proxies by %s days?", len(ids), period)) {
		logger.Info().Msg("Prolong cancelled")
		return nil
	}

	resp, err := client.Prolong(cmd.Context(), px6.ProlongParams{Period: period, IDs: ids})
	if err != nil {
		return fmt.Errorf("failed to prolong proxies: %w", err)
	}

	fmt.Printf("Order %s: prolonged %d proxies for %s %s\n", resp.OrderID, resp.Count, resp.Price, resp.Currency)
	for _, id := range resp.List.IDs() {
		fmt.Printf("• #%s until %s\n", id, resp.List[id].DateEnd)
	}
	return nil
}
