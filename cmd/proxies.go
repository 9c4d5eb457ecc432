package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/proxy6/filter"
	"github.com/s0up4200/proxy6/px6"
)

var (
	filterExpr string
	preset     string
	listState  string
	listDescr  string
	listPage   uint
	listLimit  int
	listURLs   bool

	proxyType string
	newDescr  string
	oldDescr  string
	descr     string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your proxies",
	Long: `List the proxies on your account. Results can be narrowed on the server by
state and description, and further on the client with a filter expression,
for example:

  proxy6 list --filter 'inCountry("ru") and expiresWithin(3)'`,
	RunE: runList,
}

// setTypeCmd represents the settype command
var setTypeCmd = &cobra.Command{
	Use:   "settype ID...",
	Short: "Change the protocol of proxies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSetType,
}

// setDescrCmd represents the setdescr command
var setDescrCmd = &cobra.Command{
	Use:   "setdescr [ID...]",
	Short: "Update the technical comment of proxies",
	Long:  `Update the comment of the given proxies, or of every proxy whose comment matches --old.`,
	RunE:  runSetDescr,
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [ID...]",
	Short: "Delete proxies",
	Long:  `Delete the given proxies, or every proxy with the comment given by --descr.`,
	RunE:  runDelete,
}

func init() {
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().StringVar(&listState, "state", "", "active, inactive, expiring or all")
	listCmd.Flags().StringVar(&listDescr, "descr", "", "only proxies with this comment")
	listCmd.Flags().UintVar(&listPage, "page", 0, "page number")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, fmt.Sprintf("proxies per page (1-%d)", px6.MaxPageLimit))
	listCmd.Flags().BoolVar(&listURLs, "urls", false, "print proxy URLs only")

	setTypeCmd.Flags().StringVarP(&proxyType, "type", "t", "", "http or socks")
	_ = setTypeCmd.MarkFlagRequired("type")

	setDescrCmd.Flags().StringVar(&newDescr, "new", "", "new comment")
	setDescrCmd.Flags().StringVar(&oldDescr, "old", "", "select proxies by their current comment")
	_ = setDescrCmd.MarkFlagRequired("new")

	deleteCmd.Flags().StringVar(&descr, "descr", "", "select proxies by comment")
	deleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(listCmd, setTypeCmd, setDescrCmd, deleteCmd)
}

func buildGetProxyParams() (px6.GetProxyParams, error) {
	var params px6.GetProxyParams

	if listState != "" {
		state, err := px6.ParseProxyState(listState)
		if err != nil {
			return params, err
		}
		params.State = &state
	}

	description, err := parseDescription(listDescr)
	if err != nil {
		return params, err
	}
	params.Description = description

	if listPage > 0 {
		params.Page = px6.Ptr(listPage)
	}

	if listLimit != 0 {
		limit, err := px6.NewPageLimit(listLimit)
		if err != nil {
			return params, err
		}
		params.Limit = &limit
	}

	return params, nil
}

func runList(cmd *cobra.Command, args []string) error {
	params, err := buildGetProxyParams()
	if err != nil {
		return err
	}

	selected, err := selectFilter()
	if err != nil {
		return err
	}

	resp, err := client.GetProxy(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("failed to list proxies: %w", err)
	}

	proxies := resp.List.Sorted()
	if selected != nil {
		logger.Debug().Str("filter", selected.Expression()).Int("proxies", len(proxies)).Msg("Applying filter")
		proxies, err = filter.Select(selected, proxies)
		if err != nil {
			return err
		}
	}

	if len(proxies) == 0 {
		fmt.Println("No proxies found.")
		return nil
	}

	if listURLs {
		for _, p := range proxies {
			fmt.Println(p.URL())
		}
		return nil
	}

	fmt.Printf("\nFound %d of %d proxies:\n", len(proxies), resp.ListCount)
	fmt.Println(strings.Repeat("-", 80))
	for _, p := range proxies {
		printProxy(p)
	}

	return nil
}

func printProxy(p px6.Proxy) {
	status := "active"
	if !p.Active {
		status = "inactive"
	}
	fmt.Printf("• #%s %s %s://%s [%s, IPv%s, %s]\n",
		p.ID, strings.ToUpper(p.Country), p.Type, p.Address(), status, p.Version, p.DateEnd)
	if d := p.Description.String(); d != "" {
		fmt.Printf("  Comment: %s\n", d)
	}
}

// selectFilter picks the filter to apply.
// Priority: command line filter > preset > configured default
func selectFilter() (filter.CompiledFilter, error) {
	if filterExpr != "" {
		compiled, err := filters.Compile(filterExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return compiled, nil
	}

	name := preset
	if name == "" {
		name = cfg.Filter.Default
	}
	if name == "" {
		return nil, nil
	}

	compiled, ok := filters.GetFilter(strings.ToLower(name))
	if !ok {
		return nil, fmt.Errorf("preset '%s' not found in config", name)
	}
	return compiled, nil
}

func runSetType(cmd *cobra.Command, args []string) error {
	typ, err := px6.ParseProxyType(proxyType)
	if err != nil {
		return err
	}

	ids := parseIDs(args)
	if _, err := client.SetType(cmd.Context(), px6.SetTypeParams{IDs: ids, Type: typ}); err != nil {
		if px6.IsDocumented(err, px6.ErrCodeUnknown) {
			return fmt.Errorf("failed to set type (proxies may already be %s): %w", typ, err)
		}
		return fmt.Errorf("failed to set type: %w", err)
	}

	fmt.Printf("Set type %s on %d proxies\n", typ, len(ids))
	return nil
}

func runSetDescr(cmd *cobra.Command, args []string) error {
	next, err := px6.NewProxyDescription(newDescr)
	if err != nil {
		return err
	}
	old, err := parseDescription(oldDescr)
	if err != nil {
		return err
	}

	ids := parseIDs(args)
	if old == nil && len(ids) == 0 {
		return errors.New("either proxy ids or --old must be given")
	}

	resp, err := client.SetDescription(cmd.Context(), px6.SetDescriptionParams{
		New: next,
		Old: old,
		IDs: ids,
	})
	if err != nil {
		return fmt.Errorf("failed to set description: %w", err)
	}

	fmt.Printf("Updated %d proxies\n", resp.Count)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	description, err := parseDescription(descr)
	if err != nil {
		return err
	}

	ids := parseIDs(args)
	if description == nil && len(ids) == 0 {
		return errors.New("either proxy ids or --descr must be given")
	}

	target := fmt.Sprintf("%d proxies", len(ids))
	if len(ids) == 0 {
		target = fmt.Sprintf("all proxies with comment %q", description)
	}
	if !confirm(fmt.Sprintf("Delete %s?", target)) {
		logger.Info().Msg("Deletion cancelled")
		return nil
	}

	resp, err := client.Delete(cmd.Context(), px6.DeleteParams{IDs: ids, Description: description})
	if err != nil {
		return fmt.Errorf("failed to delete proxies: %w", err)
	}

	fmt.Printf("Deleted %d proxies\n", resp.Count)
	return nil
}
