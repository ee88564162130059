package oracle

import (
	"context"

	"pledge/core"
	"pledge/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type priceService struct {
	priceStore core.IPriceStore
	endpoint   string
}

// New new price service
func New(priceStore core.IPriceStore, endpoint string) core.IPriceService {
	return &priceService{
		priceStore: priceStore,
		endpoint:   endpoint,
	}
}

func (s *priceService) GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	price, err := s.priceStore.Find(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	if !price.Price.IsPositive() {
		return decimal.Zero, core.ErrInvalidPrice
	}

	return price.Price, nil
}

func (s *priceService) SetPrice(ctx context.Context, assetID string, price decimal.Decimal) error {
	if assetID == "" {
		return core.ErrUnknownAsset
	}

	if !price.IsPositive() {
		return core.ErrInvalidPrice
	}

	return s.priceStore.Save(ctx, &core.Price{
		AssetID: assetID,
		Price:   price,
	})
}

type feedItem struct {
	AssetID string          `json:"asset_id"`
	Price   decimal.Decimal `json:"price"`
}

// PullPrices refreshes prices from the configured feed endpoint. Items with
// non-positive prices are skipped, the feed never lowers a price to zero.
func (s *priceService) PullPrices(ctx context.Context) error {
	if s.endpoint == "" {
		return nil
	}

	log := logger.FromContext(ctx).WithField("service", "oracle")

	var items []feedItem
	if _, err := resthttp.Execute(resthttp.Request(ctx), "GET", s.endpoint, nil, &items); err != nil {
		log.WithError(err).Errorln("pull prices")
		return err
	}

	for _, item := range items {
		if err := s.SetPrice(ctx, item.AssetID, item.Price); err != nil {
			log.WithError(err).Infoln("skip price:", item.AssetID)
			continue
		}
	}

	return nil
}
