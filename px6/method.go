package px6

// Method is an API method name as it appears in the request path.
type Method string

// API methods
const (
	MethodGetPrice       Method = "getprice"
	MethodGetCount       Method = "getcount"
	MethodGetCountry     Method = "getcountry"
	MethodGetProxy       Method = "getproxy"
	MethodSetType        Method = "settype"
	MethodSetDescription Method = "setdescr"
	MethodBuy            Method = "buy"
	MethodProlong        Method = "prolong"
	MethodDelete         Method = "delete"
	MethodCheck          Method = "check"
	MethodIPAuth         Method = "ipauth"
)

func (m Method) String() string { return string(m) }
