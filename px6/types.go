package px6

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Envelope holds the account fields present on every successful response.
type Envelope struct {
	Status   string     `json:"status"`
	UserID   FlexString `json:"user_id"`
	Balance  Price      `json:"balance"`
	Currency string     `json:"currency"`
}

// SuccessResponse is returned by methods that carry no extra data
// (settype, ipauth).
type SuccessResponse struct {
	Envelope
}

// GetPriceResponse is the cost of an order.
type GetPriceResponse struct {
	Envelope
	Price       Price    `json:"price"`
	PriceSingle Price    `json:"price_single"`
	Period      FlexUint `json:"period"`
	Count       FlexUint `json:"count"`
}

// GetCountResponse is the number of proxies available to purchase.
type GetCountResponse struct {
	Envelope
	Count FlexUint `json:"count"`
}

// GetCountryResponse lists the ISO2 codes available for purchase.
type GetCountryResponse struct {
	Envelope
	List []string `json:"list"`
}

// GetProxyResponse is the account's proxy list.
type GetProxyResponse struct {
	Envelope
	ListCount FlexUint  `json:"list_count"`
	List      ProxyList `json:"list"`
}

// SetDescriptionResponse reports how many proxies were updated.
type SetDescriptionResponse struct {
	Envelope
	Count FlexUint `json:"count"`
}

// BuyResponse describes a completed purchase.
type BuyResponse struct {
	Envelope
	OrderID     FlexString   `json:"order_id"`
	Count       FlexUint     `json:"count"`
	Price       Price        `json:"price"`
	PriceSingle Price        `json:"price_single"`
	Period      FlexUint     `json:"period"`
	Version     ProxyVersion `json:"version"`
	Type        ProxyType    `json:"type"`
	Country     string       `json:"country"`
	List        ProxyList    `json:"list"`
}

// ProlongResponse describes a completed extension.
type ProlongResponse struct {
	Envelope
	OrderID     FlexString  `json:"order_id"`
	Price       Price       `json:"price"`
	PriceSingle Price       `json:"price_single"`
	Period      FlexUint    `json:"period"`
	Count       FlexUint    `json:"count"`
	List        ProlongList `json:"list"`
}

// DeleteResponse reports how many proxies were deleted.
type DeleteResponse struct {
	Envelope
	Count FlexUint `json:"count"`
}

// CheckResponse is the validity of a single proxy.
type CheckResponse struct {
	Envelope
	ProxyID     ProxyID `json:"proxy_id"`
	ProxyStatus bool    `json:"proxy_status"`
}

// Proxy is a purchased proxy as listed by getproxy and buy.
type Proxy struct {
	ID          ProxyID      `json:"id"`
	Version     ProxyVersion `json:"version"`
	IP          string       `json:"ip"`
	Host        string       `json:"host"`
	Port        Port         `json:"port"`
	User        string       `json:"user"`
	Pass        string       `json:"pass"`
	Type        ProxyType    `json:"type"`
	Country     string       `json:"country"`
	Date        string       `json:"date"`
	DateEnd     string       `json:"date_end"`
	Unixtime    FlexUint     `json:"unixtime"`
	UnixtimeEnd FlexUint     `json:"unixtime_end"`
	Description FlexString   `json:"descr"`
	Active      ActiveFlag   `json:"active"`
}

// Expires returns the expiry time, or the zero time if unknown
func (p *Proxy) Expires() time.Time {
	if p.UnixtimeEnd > 0 {
		return time.Unix(int64(p.UnixtimeEnd), 0)
	}
	return time.Time{}
}

// Address returns the "host:port" string, with IPv6 hosts in brackets
func (p *Proxy) Address() string {
	return net.JoinHostPort(p.Host, strconv.FormatUint(uint64(p.Port), 10))
}

// URL returns the proxy URL including credentials
func (p *Proxy) URL() string {
	scheme := "http"
	if p.Type == ProxyTypeSOCKS5 {
		scheme = "socks5"
	}
	u := url.URL{Scheme: scheme, User: url.UserPassword(p.User, p.Pass), Host: p.Address()}
	return u.String()
}

// ProxyString returns the proxy as an ip:port:user:pass token for the check method
func (p *Proxy) ProxyString() (ProxyString, error) {
	return NewProxyString(fmt.Sprintf("%s:%d:%s:%s", p.Host, p.Port, p.User, p.Pass))
}

// ProxyList is keyed by proxy id. The API sends an empty JSON array
// instead of an empty object when there are no entries.
type ProxyList map[ProxyID]Proxy

// UnmarshalJSON implements json.Unmarshaler
func (l *ProxyList) UnmarshalJSON(data []byte) error {
	var m map[ProxyID]Proxy
	if err := decodeKeyedList(data, &m); err != nil {
		return err
	}
	*l = m
	return nil
}

// Sorted returns the proxies ordered by id
func (l ProxyList) Sorted() []Proxy {
	proxies := make([]Proxy, 0, len(l))
	for _, p := range l {
		proxies = append(proxies, p)
	}
	sort.Slice(proxies, func(i, j int) bool {
		return lessID(proxies[i].ID, proxies[j].ID)
	})
	return proxies
}

// ProlongedProxy is a proxy entry in a prolong response.
type ProlongedProxy struct {
	ID          ProxyID  `json:"id"`
	DateEnd     string   `json:"date_end"`
	UnixtimeEnd FlexUint `json:"unixtime_end"`
}

// ProlongList is keyed by proxy id, with the same empty array quirk as ProxyList.
type ProlongList map[ProxyID]ProlongedProxy

// UnmarshalJSON implements json.Unmarshaler
func (l *ProlongList) UnmarshalJSON(data []byte) error {
	var m map[ProxyID]ProlongedProxy
	if err := decodeKeyedList(data, &m); err != nil {
		return err
	}
	*l = m
	return nil
}

// IDs returns the prolonged proxy ids in order
func (l ProlongList) IDs() []ProxyID {
	ids := make([]ProxyID, 0, len(l))
	for id := range l {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return lessID(ids[i], ids[j])
	})
	return ids
}

func decodeKeyedList[V any](data []byte, out *map[ProxyID]V) error {
	data = bytes.TrimSpace(data)
	switch jsonKind(data) {
	case "object":
		return json.Unmarshal(data, out)
	case "array":
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		if len(items) != 0 {
			return &FlexError{Got: "non-empty array", Expected: "object keyed by proxy id"}
		}
		*out = map[ProxyID]V{}
		return nil
	default:
		return &FlexError{Got: jsonKind(data), Expected: "object keyed by proxy id"}
	}
}

// lessID orders numeric ids numerically and everything else lexically.
func lessID(a, b ProxyID) bool {
	na, errA := strconv.ParseUint(string(a), 10, 64)
	nb, errB := strconv.ParseUint(string(b), 10, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
