package cmd

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/proxy6/px6"
)

// fakeAPI answers check calls from a table and counts concurrent calls
type fakeAPI struct {
	px6.API

	alive    map[px6.ProxyID]bool
	failing  map[px6.ProxyID]error
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32

	mu    sync.Mutex
	calls []px6.CheckParams
}

func (f *fakeAPI) Check(ctx context.Context, params px6.CheckParams) (*px6.CheckResponse, error) {
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if current <= peak || f.peak.CompareAndSwap(peak, current) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, params)
	f.mu.Unlock()

	time.Sleep(f.delay)

	id := params.IDs[0]
	if err := f.failing[id]; err != nil {
		return nil, err
	}
	return &px6.CheckResponse{ProxyID: id, ProxyStatus: f.alive[id]}, nil
}

func TestCheckProxies(t *testing.T) {
	api := &fakeAPI{
		alive: map[px6.ProxyID]bool{"1": true, "3": true},
		failing: map[px6.ProxyID]error{
			"2": &px6.DocumentedError{Code: px6.ErrCodeNotFound},
		},
	}

	results, err := checkProxies(context.Background(), api, []px6.ProxyID{"1", "2", "3", "4"}, 2)
	require.Error(t, err)

	require.Len(t, results, 4)
	assert.Equal(t, checkResult{ID: "1", Alive: true}, results[0])
	assert.Equal(t, px6.ProxyID("2"), results[1].ID)
	assert.Error(t, results[1].Err)
	assert.Equal(t, checkResult{ID: "3", Alive: true}, results[2])
	assert.Equal(t, checkResult{ID: "4", Alive: false}, results[3])

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 1)
	assert.True(t, px6.IsDocumented(err, px6.ErrCodeNotFound))
	assert.Contains(t, err.Error(), "proxy 2")
}

func TestCheckProxiesAllPass(t *testing.T) {
	api := &fakeAPI{alive: map[px6.ProxyID]bool{"1": true}}

	results, err := checkProxies(context.Background(), api, []px6.ProxyID{"1"}, 4)
	require.NoError(t, err)
	assert.Equal(t, []checkResult{{ID: "1", Alive: true}}, results)
	assert.Len(t, api.calls, 1)
}

func TestCheckProxiesConcurrencyLimit(t *testing.T) {
	api := &fakeAPI{delay: 20 * time.Millisecond}

	ids := parseIDs([]string{"1,2,3,4,5,6,7,8"})
	results, err := checkProxies(context.Background(), api, ids, 3)
	require.NoError(t, err)
	assert.Len(t, results, 8)
	assert.LessOrEqual(t, api.peak.Load(), int32(3))
	assert.Len(t, api.calls, 8)
}

func TestCheckProxiesEmpty(t *testing.T) {
	results, err := checkProxies(context.Background(), &fakeAPI{}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
