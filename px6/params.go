package px6

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryPair is one query parameter. A pair that is not Present is omitted;
// a Present pair with an empty Value renders as a bare flag key.
type QueryPair struct {
	Key     string
	Value   string
	Present bool
}

// Params is implemented by every request parameter object.
type Params interface {
	// Method returns the API method the parameters belong to
	Method() Method
	// QueryPairs returns the parameters in a fixed order
	QueryPairs() []QueryPair
}

// EncodeQuery renders the parameters as key=value pairs joined by '&',
// preserving field order. Values are not escaped.
func EncodeQuery(p Params) string {
	return encodeQuery(p, func(v string) string { return v })
}

var queryValueReplacer = strings.NewReplacer("%2C", ",", "%3A", ":")

// escapeQueryValue escapes a value for use in a request URL, leaving the
// commas of id lists and the colons of proxy strings readable.
func escapeQueryValue(v string) string {
	return queryValueReplacer.Replace(url.QueryEscape(v))
}

func encodeQuery(p Params, escape func(string) string) string {
	var parts []string
	for _, pair := range p.QueryPairs() {
		if !pair.Present {
			continue
		}
		if pair.Value == "" {
			parts = append(parts, pair.Key)
			continue
		}
		parts = append(parts, pair.Key+"="+escape(pair.Value))
	}
	return strings.Join(parts, "&")
}

func set(key, value string) QueryPair {
	return QueryPair{Key: key, Value: value, Present: true}
}

func flag(key string, on bool) QueryPair {
	return QueryPair{Key: key, Present: on}
}

func optional[T interface{ String() string }](key string, v *T) QueryPair {
	if v == nil {
		return QueryPair{Key: key}
	}
	return set(key, (*v).String())
}

// proxyType leaves an unset or unknown type out of the query; the API then
// answers with ErrCodeType instead of receiving type=unknown.
func proxyType(key string, t *ProxyType) QueryPair {
	if t == nil || !t.IsValid() {
		return QueryPair{Key: key}
	}
	return set(key, t.String())
}

func optionalUint(key string, v *uint) QueryPair {
	if v == nil {
		return QueryPair{Key: key}
	}
	return set(key, strconv.FormatUint(uint64(*v), 10))
}

// ids renders a list; a nil list is absent, an empty one is a bare key.
func ids(key string, list []ProxyID) QueryPair {
	if list == nil {
		return QueryPair{Key: key}
	}
	return set(key, joinIDs(list))
}

func joinIDs(list []ProxyID) string {
	parts := make([]string, len(list))
	for i, id := range list {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

// GetPriceParams requests the cost of an order.
type GetPriceParams struct {
	Count   uint
	Period  ProxyPeriod
	Version *ProxyVersion
}

func (GetPriceParams) Method() Method { return MethodGetPrice }

func (p GetPriceParams) QueryPairs() []QueryPair {
	return []QueryPair{
		set("count", strconv.FormatUint(uint64(p.Count), 10)),
		set("period", p.Period.String()),
		optional("version", p.Version),
	}
}

// GetCountParams requests the number of proxies available in a country.
type GetCountParams struct {
	Country Country
	Version *ProxyVersion
}

func (GetCountParams) Method() Method { return MethodGetCount }

func (p GetCountParams) QueryPairs() []QueryPair {
	return []QueryPair{
		set("country", p.Country.String()),
		optional("version", p.Version),
	}
}

// GetCountryParams requests the countries available for purchase.
type GetCountryParams struct {
	Version *ProxyVersion
}

func (GetCountryParams) Method() Method { return MethodGetCountry }

func (p GetCountryParams) QueryPairs() []QueryPair {
	return []QueryPair{
		optional("version", p.Version),
	}
}

// GetProxyParams requests the account's proxy list.
type GetProxyParams struct {
	State       *ProxyState
	Description *ProxyDescription
	Page        *uint
	Limit       *PageLimit
}

func (GetProxyParams) Method() Method { return MethodGetProxy }

func (p GetProxyParams) QueryPairs() []QueryPair {
	return []QueryPair{
		optional("state", p.State),
		optional("descr", p.Description),
		optionalUint("page", p.Page),
		optional("limit", p.Limit),
		flag("nokey", true),
	}
}

// SetTypeParams changes the protocol of proxies.
type SetTypeParams struct {
	IDs  []ProxyID
	Type ProxyType
}

func (SetTypeParams) Method() Method { return MethodSetType }

func (p SetTypeParams) QueryPairs() []QueryPair {
	return []QueryPair{
		set("ids", joinIDs(p.IDs)),
		proxyType("type", &p.Type),
	}
}

// SetDescriptionParams updates the technical comment of proxies
// selected by their old comment or by ids.
type SetDescriptionParams struct {
	New ProxyDescription
	Old *ProxyDescription
	IDs []ProxyID
}

func (SetDescriptionParams) Method() Method { return MethodSetDescription }

func (p SetDescriptionParams) QueryPairs() []QueryPair {
	return []QueryPair{
		set("new", p.New.String()),
		optional("old", p.Old),
		ids("ids", p.IDs),
	}
}

// BuyParams purchases proxies.
type BuyParams struct {
	Count       uint
	Period      ProxyPeriod
	Country     Country
	Version     *ProxyVersion
	Type        *ProxyType
	Description *ProxyDescription
	AutoProlong bool
}

func (BuyParams) Method() Method { return MethodBuy }

func (p BuyParams) QueryPairs() []QueryPair {
	return []QueryPair{
		set("count", strconv.FormatUint(uint64(p.Count), 10)),
		set("period", p.Period.String()),
		set("country", p.Country.String()),
		optional("version", p.Version),
		proxyType("type", p.Type),
		optional("descr", p.Description),
		flag("auto_prolong", p.AutoProlong),
		flag("nokey", true),
	}
}

// ProlongParams extends existing proxies.
type ProlongParams struct {
	Period ProxyPeriod
	IDs    []ProxyID
}

func (ProlongParams) Method() Method { return MethodProlong }

func (p ProlongParams) QueryPairs() []QueryPair {
	return []QueryPair{
		set("period", p.Period.String()),
		set("ids", joinIDs(p.IDs)),
		flag("nokey", true),
	}
}

// DeleteParams deletes proxies selected by ids or by comment.
type DeleteParams struct {
	IDs         []ProxyID
	Description *ProxyDescription
}

func (DeleteParams) Method() Method { return MethodDelete }

func (p DeleteParams) QueryPairs() []QueryPair {
	return []QueryPair{
		ids("ids", p.IDs),
		optional("descr", p.Description),
	}
}

// CheckParams checks the validity of a proxy by id or by proxy string.
type CheckParams struct {
	IDs   []ProxyID
	Proxy *ProxyString
}

func (CheckParams) Method() Method { return MethodCheck }

func (p CheckParams) QueryPairs() []QueryPair {
	return []QueryPair{
		ids("ids", p.IDs),
		optional("proxy", p.Proxy),
	}
}

// IPAuthParams binds or removes IPs used for authorization.
type IPAuthParams struct {
	IP IPsToConnect
}

func (IPAuthParams) Method() Method { return MethodIPAuth }

func (p IPAuthParams) QueryPairs() []QueryPair {
	return []QueryPair{
		set("ip", p.IP.String()),
	}
}
