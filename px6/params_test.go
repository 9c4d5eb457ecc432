package px6

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPeriod(t *testing.T, days int) ProxyPeriod {
	t.Helper()
	p, err := NewProxyPeriod(days)
	require.NoError(t, err)
	return p
}

func mustCountry(t *testing.T, iso2 string) Country {
	t.Helper()
	c, err := NewCountry(iso2)
	require.NoError(t, err)
	return c
}

func mustDescription(t *testing.T, text string) *ProxyDescription {
	t.Helper()
	d, err := NewProxyDescription(text)
	require.NoError(t, err)
	return &d
}

func mustLimit(t *testing.T, limit int) *PageLimit {
	t.Helper()
	l, err := NewPageLimit(limit)
	require.NoError(t, err)
	return &l
}

func mustProxyString(t *testing.T, s string) *ProxyString {
	t.Helper()
	ps, err := NewProxyString(s)
	require.NoError(t, err)
	return &ps
}

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{
			name:   "full get price",
			params: GetPriceParams{Count: 10, Period: mustPeriod(t, 30), Version: Ptr(IPv6)},
			want:   "count=10&period=30&version=6",
		},
		{
			name:   "minimal get price",
			params: GetPriceParams{Count: 10, Period: mustPeriod(t, 30)},
			want:   "count=10&period=30",
		},
		{
			name:   "minimal get count",
			params: GetCountParams{Country: mustCountry(t, "UK")},
			want:   "country=uk",
		},
		{
			name:   "full get country",
			params: GetCountryParams{Version: Ptr(IPv6)},
			want:   "version=6",
		},
		{
			name:   "minimal get country",
			params: GetCountryParams{},
			want:   "",
		},
		{
			name: "full get proxy",
			params: GetProxyParams{
				State:       Ptr(StateActive),
				Description: mustDescription(t, "test_description"),
				Page:        Ptr(uint(3)),
				Limit:       mustLimit(t, 10),
			},
			want: "state=active&descr=test_description&page=3&limit=10&nokey",
		},
		{
			name:   "minimal get proxy",
			params: GetProxyParams{},
			want:   "nokey",
		},
		{
			name:   "set type",
			params: SetTypeParams{IDs: []ProxyID{"id1", "id2"}, Type: ProxyTypeSOCKS5},
			want:   "ids=id1,id2&type=socks",
		},
		{
			name:   "set type without protocol",
			params: SetTypeParams{IDs: []ProxyID{"1"}},
			want:   "ids=1",
		},
		{
			name:   "set type with unknown protocol",
			params: SetTypeParams{IDs: []ProxyID{"1"}, Type: ProxyType(7)},
			want:   "ids=1",
		},
		{
			name: "full set description",
			params: SetDescriptionParams{
				New: *mustDescription(t, "new_proxy_description"),
				Old: mustDescription(t, "old_proxy_description"),
				IDs: []ProxyID{"id1", "id2"},
			},
			want: "new=new_proxy_description&old=old_proxy_description&ids=id1,id2",
		},
		{
			name:   "minimal set description",
			params: SetDescriptionParams{New: *mustDescription(t, "new_proxy_description")},
			want:   "new=new_proxy_description",
		},
		{
			name: "full buy",
			params: BuyParams{
				Count:       100,
				Period:      mustPeriod(t, 30),
				Country:     mustCountry(t, "us"),
				Version:     Ptr(IPv6),
				Type:        Ptr(ProxyTypeHTTP),
				Description: mustDescription(t, "new_proxy_description"),
				AutoProlong: true,
			},
			want: "count=100&period=30&country=us&version=6&type=http&descr=new_proxy_description&auto_prolong&nokey",
		},
		{
			name:   "minimal buy",
			params: BuyParams{Count: 100, Period: mustPeriod(t, 30), Country: mustCountry(t, "us")},
			want:   "count=100&period=30&country=us&nokey",
		},
		{
			name:   "buy with zero type",
			params: BuyParams{Count: 1, Period: mustPeriod(t, 3), Country: mustCountry(t, "ru"), Type: Ptr(ProxyType(0))},
			want:   "count=1&period=3&country=ru&nokey",
		},
		{
			name:   "prolong",
			params: ProlongParams{Period: mustPeriod(t, 30), IDs: []ProxyID{"id1", "id2"}},
			want:   "period=30&ids=id1,id2&nokey",
		},
		{
			name: "full delete",
			params: DeleteParams{
				IDs:         []ProxyID{"id1", "id2"},
				Description: mustDescription(t, "new_proxy_description"),
			},
			want: "ids=id1,id2&descr=new_proxy_description",
		},
		{
			name:   "minimal delete",
			params: DeleteParams{},
			want:   "",
		},
		{
			name:   "delete with empty id list",
			params: DeleteParams{IDs: []ProxyID{}},
			want:   "ids",
		},
		{
			name: "full check",
			params: CheckParams{
				IDs:   []ProxyID{"id1", "id2"},
				Proxy: mustProxyString(t, "127.0.0.1:8080:user:pass"),
			},
			want: "ids=id1,id2&proxy=127.0.0.1:8080:user:pass",
		},
		{
			name:   "minimal check",
			params: CheckParams{},
			want:   "",
		},
		{
			name:   "ip auth delete",
			params: IPAuthParams{IP: DeleteIPs()},
			want:   "ip=delete",
		},
		{
			name: "ip auth connect",
			params: IPAuthParams{IP: ConnectIPs(
				netip.MustParseAddr("127.0.0.1"),
				netip.MustParseAddr("127.0.0.2"),
			)},
			want: "ip=127.0.0.1,127.0.0.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := EncodeQuery(tt.params)
			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, EncodeQuery(tt.params))
		})
	}
}

func TestParamsMethods(t *testing.T) {
	tests := []struct {
		params Params
		want   string
	}{
		{GetPriceParams{}, "getprice"},
		{GetCountParams{}, "getcount"},
		{GetCountryParams{}, "getcountry"},
		{GetProxyParams{}, "getproxy"},
		{SetTypeParams{}, "settype"},
		{SetDescriptionParams{}, "setdescr"},
		{BuyParams{}, "buy"},
		{ProlongParams{}, "prolong"},
		{DeleteParams{}, "delete"},
		{CheckParams{}, "check"},
		{IPAuthParams{}, "ipauth"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.params.Method().String())
	}
}

func TestEscapedQuery(t *testing.T) {
	params := SetDescriptionParams{
		New: *mustDescription(t, "team a&b"),
		IDs: []ProxyID{"1", "2"},
	}

	assert.Equal(t, "new=team a&b&ids=1,2", EncodeQuery(params))
	assert.Equal(t, "new=team+a%26b&ids=1,2", encodeQuery(params, escapeQueryValue))
}
