// Package px6 provides a client for the proxy6 (px6.link) proxy-seller API.
//
// Every API method is a GET request to {base}/api/{key}/{method}?{query}
// answered with JSON. This package wraps that in three layers:
//
//   - Value objects: validated constructors (NewProxyPeriod, NewCountry,
//     NewPageLimit, NewProxyDescription, NewProxyString) that are the only
//     way to build a valid value, so parameters never need re-checking.
//   - Parameter objects: one struct per method whose QueryPairs are encoded
//     in a fixed order by EncodeQuery.
//   - Responses: typed structs decoded with tolerant field types, because
//     the API sends the same field as a number or as a string.
//
// # Usage
//
//	client, err := px6.NewClient(apiKey, logger, px6.WithRateLimit(3, 1))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	period, err := px6.NewProxyPeriod(30)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	price, err := client.GetPrice(ctx, px6.GetPriceParams{
//		Count:   10,
//		Period:  period,
//		Version: px6.Ptr(px6.IPv6),
//	})
//
// # Error Handling
//
// Value object constructors return *BuildError wrapping one of the
// ErrProxyPeriodTooLow style sentinels. Client calls return an APIError:
//
//   - *TransportError: the request did not complete
//   - *TooManyRequestsError: HTTP 429
//   - *DocumentedError: a documented error_id (see ErrorCode), with any status
//   - *UnknownError: a failing status with an unrecognized body
//   - *DecodeError: a successful status with a body of the wrong shape
//
// Documented errors match their code with errors.Is:
//
//	if errors.Is(err, px6.ErrCodeNoMoney) {
//		// top up the balance
//	}
package px6
