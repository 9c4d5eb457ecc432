package px6

import (
	"context"
)

// API defines the interface for proxy6 operations
type API interface {
	// Ping verifies the API key by listing the available countries
	Ping(ctx context.Context) error

	GetPrice(ctx context.Context, params GetPriceParams) (*GetPriceResponse, error)
	GetCount(ctx context.Context, params GetCountParams) (*GetCountResponse, error)
	GetCountry(ctx context.Context, params GetCountryParams) (*GetCountryResponse, error)
	GetProxy(ctx context.Context, params GetProxyParams) (*GetProxyResponse, error)
	SetType(ctx context.Context, params SetTypeParams) (*SuccessResponse, error)
	SetDescription(ctx context.Context, params SetDescriptionParams) (*SetDescriptionResponse, error)
	Buy(ctx context.Context, params BuyParams) (*BuyResponse, error)
	Prolong(ctx context.Context, params ProlongParams) (*ProlongResponse, error)
	Delete(ctx context.Context, params DeleteParams) (*DeleteResponse, error)
	Check(ctx context.Context, params CheckParams) (*CheckResponse, error)
	IPAuth(ctx context.Context, params IPAuthParams) (*SuccessResponse, error)
}

var _ API = (*Client)(nil)
