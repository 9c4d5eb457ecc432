package px6

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// MaxPageLimit is the largest page size the getproxy method accepts
	MaxPageLimit = 1000
	// MaxDescriptionLength is the longest technical comment the API stores
	MaxDescriptionLength = 50
)

// ProxyPeriod is a positive number of days.
type ProxyPeriod struct {
	days int
}

// NewProxyPeriod validates a period in days
func NewProxyPeriod(days int) (ProxyPeriod, error) {
	if days < 1 {
		return ProxyPeriod{}, buildError("proxy period", strconv.Itoa(days), ErrProxyPeriodTooLow)
	}
	return ProxyPeriod{days: days}, nil
}

// Days returns the period length
func (p ProxyPeriod) Days() int { return p.days }

func (p ProxyPeriod) String() string { return strconv.Itoa(p.days) }

// Country is a lowercase ISO 3166-1 alpha-2 code.
type Country struct {
	code string
}

// NewCountry validates a two character country code and lowercases it.
// Length is counted in characters, not bytes.
func NewCountry(iso2 string) (Country, error) {
	if utf8.RuneCountInString(iso2) != 2 {
		return Country{}, buildError("country", iso2, ErrCountryMustBeISO2)
	}
	return Country{code: strings.ToLower(iso2)}, nil
}

func (c Country) String() string { return c.code }

// PageLimit is a page size between 1 and MaxPageLimit.
type PageLimit struct {
	limit int
}

// NewPageLimit validates a page size
func NewPageLimit(limit int) (PageLimit, error) {
	switch {
	case limit < 1:
		return PageLimit{}, buildError("page limit", strconv.Itoa(limit), ErrPageLimitTooLow)
	case limit > MaxPageLimit:
		return PageLimit{}, buildError("page limit", strconv.Itoa(limit), ErrPageLimitTooHigh)
	}
	return PageLimit{limit: limit}, nil
}

// Value returns the page size
func (l PageLimit) Value() int { return l.limit }

func (l PageLimit) String() string { return strconv.Itoa(l.limit) }

// ProxyDescription is a technical comment attached to proxies.
type ProxyDescription struct {
	text string
}

// NewProxyDescription validates a description of at most MaxDescriptionLength characters
func NewProxyDescription(text string) (ProxyDescription, error) {
	if utf8.RuneCountInString(text) > MaxDescriptionLength {
		return ProxyDescription{}, buildError("proxy description", text, ErrProxyDescriptionTooLong)
	}
	return ProxyDescription{text: text}, nil
}

func (d ProxyDescription) String() string { return d.text }

// ProxyID is an opaque proxy identifier. The API sends ids both as
// numbers and as strings, so any value is accepted.
type ProxyID string

// NewProxyID wraps an identifier
func NewProxyID(id string) ProxyID { return ProxyID(id) }

func (id ProxyID) String() string { return string(id) }

// UnmarshalJSON implements json.Unmarshaler
func (id *ProxyID) UnmarshalJSON(data []byte) error {
	var s FlexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	*id = ProxyID(s)
	return nil
}

// Price is a monetary amount in the account currency.
type Price float64

// UnmarshalJSON implements json.Unmarshaler
func (p *Price) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*p = Price(f)
	return nil
}

func (p Price) String() string { return strconv.FormatFloat(float64(p), 'f', -1, 64) }

// Port is a TCP port number.
type Port uint16

// UnmarshalJSON implements json.Unmarshaler
func (p *Port) UnmarshalJSON(data []byte) error {
	var v FlexUint16
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*p = Port(v)
	return nil
}

func (p Port) String() string { return strconv.Itoa(int(p)) }

// ProxyString is an ip:port:user:pass credential token.
type ProxyString struct {
	raw  string
	ip   netip.Addr
	port uint16
	user string
	pass string
}

// NewProxyString validates the ip:port:user:pass format
func NewProxyString(s string) (ProxyString, error) {
	fail := func() (ProxyString, error) {
		return ProxyString{}, buildError("proxy string", s, ErrProxyStringIncorrectFormat)
	}

	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return fail()
	}

	ip, err := netip.ParseAddr(parts[0])
	if err != nil {
		return fail()
	}
	port, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return fail()
	}
	if parts[2] == "" || parts[3] == "" {
		return fail()
	}

	return ProxyString{
		raw:  s,
		ip:   ip,
		port: uint16(port),
		user: parts[2],
		pass: parts[3],
	}, nil
}

// IP returns the proxy address
func (p ProxyString) IP() netip.Addr { return p.ip }

// Port returns the proxy port
func (p ProxyString) Port() uint16 { return p.port }

// User returns the login
func (p ProxyString) User() string { return p.user }

// Password returns the password
func (p ProxyString) Password() string { return p.pass }

func (p ProxyString) String() string { return p.raw }

// ProxyType is the proxy protocol.
type ProxyType int

const (
	// ProxyTypeHTTP is an HTTP(S) proxy
	ProxyTypeHTTP ProxyType = iota + 1
	// ProxyTypeSOCKS5 is a SOCKS5 proxy
	ProxyTypeSOCKS5
)

// String returns the API form of the proxy type
func (t ProxyType) String() string {
	switch t {
	case ProxyTypeHTTP:
		return "http"
	case ProxyTypeSOCKS5:
		return "socks"
	default:
		return "unknown"
	}
}

// IsValid reports whether t is one of the known protocols. The zero value
// is not.
func (t ProxyType) IsValid() bool {
	return t == ProxyTypeHTTP || t == ProxyTypeSOCKS5
}

// ParseProxyType parses "http" or "socks" ("socks5" is accepted as well)
func ParseProxyType(s string) (ProxyType, error) {
	switch strings.ToLower(s) {
	case "http", "https":
		return ProxyTypeHTTP, nil
	case "socks", "socks5":
		return ProxyTypeSOCKS5, nil
	}
	return 0, fmt.Errorf("unknown proxy type: %q", s)
}

// UnmarshalJSON implements json.Unmarshaler
func (t *ProxyType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &FlexError{Got: jsonKind(data), Expected: "proxy type string"}
	}
	parsed, err := ParseProxyType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ProxyState selects proxies by lifecycle state.
type ProxyState int

const (
	// StateActive selects active proxies
	StateActive ProxyState = iota + 1
	// StateInactive selects inactive proxies
	StateInactive
	// StateExpiring selects proxies that expire soon
	StateExpiring
	// StateAll selects every proxy
	StateAll
)

// String returns the API form of the state
func (s ProxyState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateExpiring:
		return "expiring"
	case StateAll:
		return "all"
	default:
		return "unknown"
	}
}

// ParseProxyState parses the API form of a state
func ParseProxyState(s string) (ProxyState, error) {
	for _, state := range []ProxyState{StateActive, StateInactive, StateExpiring, StateAll} {
		if strings.EqualFold(s, state.String()) {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unknown proxy state: %q", s)
}

// ProxyVersion is the proxy IP version offered by the API.
type ProxyVersion int

const (
	// IPv4 is a dedicated IPv4 proxy
	IPv4 ProxyVersion = 4
	// IPv6 is a dedicated IPv6 proxy
	IPv6 ProxyVersion = 6
	// IPv4Shared is a shared IPv4 proxy
	IPv4Shared ProxyVersion = 3
)

// String returns the numeric API code of the version
func (v ProxyVersion) String() string {
	return strconv.Itoa(int(v))
}

// ParseProxyVersion parses "4", "6" or "3" (and the aliases ipv4, ipv6, shared)
func ParseProxyVersion(s string) (ProxyVersion, error) {
	switch strings.ToLower(s) {
	case "4", "ipv4":
		return IPv4, nil
	case "6", "ipv6":
		return IPv6, nil
	case "3", "shared", "ipv4shared":
		return IPv4Shared, nil
	}
	return 0, fmt.Errorf("unknown proxy version: %q", s)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *ProxyVersion) UnmarshalJSON(data []byte) error {
	var s FlexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := ParseProxyVersion(string(s))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// IPsToConnect is the ipauth target: either remove all bound IPs
// or bind the given list.
type IPsToConnect struct {
	remove bool
	addrs  []netip.Addr
}

// DeleteIPs removes every IP bound for authorization
func DeleteIPs() IPsToConnect {
	return IPsToConnect{remove: true}
}

// ConnectIPs binds the given addresses for authorization
func ConnectIPs(addrs ...netip.Addr) IPsToConnect {
	return IPsToConnect{addrs: append([]netip.Addr(nil), addrs...)}
}

// IsDelete reports whether this removes the bound IPs
func (i IPsToConnect) IsDelete() bool { return i.remove }

// Addrs returns the addresses to bind
func (i IPsToConnect) Addrs() []netip.Addr {
	return append([]netip.Addr(nil), i.addrs...)
}

func (i IPsToConnect) String() string {
	if i.remove {
		return "delete"
	}
	ips := make([]string, len(i.addrs))
	for n, addr := range i.addrs {
		ips[n] = addr.String()
	}
	return strings.Join(ips, ",")
}

// Ptr returns a pointer to v, for optional parameter fields.
func Ptr[T any](v T) *T {
	return &v
}
