package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/proxy6/px6"
)

var checkProxy string

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [ID...]",
	Short: "Check that proxies are working",
	Long: `Check proxies by id, or a single proxy given as ip:port:user:pass.
Ids are checked concurrently, up to check.concurrency at a time.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkProxy, "proxy", "", "proxy string ip:port:user:pass")
	rootCmd.AddCommand(checkCmd)
}

// checkResult is the outcome of checking one proxy
type checkResult struct {
	ID    px6.ProxyID
	Alive bool
	Err   error
}

// checkProxies checks every id with at most concurrency requests in flight.
// Results keep the order of ids; failed checks are also returned combined.
func checkProxies(ctx context.Context, api px6.API, ids []px6.ProxyID, concurrency int) ([]checkResult, error) {
	results := make([]checkResult, len(ids))

	var (
		mu   sync.Mutex
		merr *multierror.Error
	)

	g := new(errgroup.Group)
	g.SetLimit(max(concurrency, 1))

	for i, id := range ids {
		g.Go(func() error {
			resp, err := api.Check(ctx, px6.CheckParams{IDs: []px6.ProxyID{id}})
			if err != nil {
				results[i] = checkResult{ID: id, Err: err}
				mu.Lock()
				merr = multierror.Append(merr, fmt.Errorf("proxy %s: %w", id, err))
				mu.Unlock()
				return nil
			}
			results[i] = checkResult{ID: id, Alive: resp.ProxyStatus}
			return nil
		})
	}

	// goroutines only report through merr
	_ = g.Wait()

	return results, merr.ErrorOrNil()
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if checkProxy != "" {
		ps, err := px6.NewProxyString(checkProxy)
		if err != nil {
			return err
		}
		resp, err := client.Check(ctx, px6.CheckParams{Proxy: &ps})
		if err != nil {
			return fmt.Errorf("failed to check proxy: %w", err)
		}
		fmt.Printf("%s:%d %s\n", ps.IP(), ps.Port(), aliveStatus(resp.ProxyStatus))
		return nil
	}

	ids := parseIDs(args)
	if len(ids) == 0 {
		return fmt.Errorf("either proxy ids or --proxy must be given")
	}

	logger.Debug().Int("proxies", len(ids)).Int("concurrency", cfg.Check.Concurrency).Msg("Checking proxies")

	results, err := checkProxies(ctx, client, ids, cfg.Check.Concurrency)

	var alive int
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Printf("• #%s ERROR\n", r.ID)
		case r.Alive:
			alive++
			fmt.Printf("• #%s %s\n", r.ID, aliveStatus(true))
		default:
			fmt.Printf("• #%s %s\n", r.ID, aliveStatus(false))
		}
	}
	fmt.Printf("\n%d of %d proxies working\n", alive, len(results))

	if err != nil {
		return fmt.Errorf("some checks failed: %w", err)
	}
	return nil
}

func aliveStatus(ok bool) string {
	if ok {
		return "✓ working"
	}
	return "✗ not working"
}
