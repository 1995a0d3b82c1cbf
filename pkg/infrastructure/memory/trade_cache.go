package memory

import (
	"bittrex-client/pkg/domain/model"
	"fmt"
	"time"

	"github.com/pmylund/go-cache"
)

// TradeCache 取得済みの約定IDを一定時間記憶する
type TradeCache struct {
	cache *cache.Cache
}

// NewTradeCache 生成
func NewTradeCache(ttl time.Duration) *TradeCache {
	return &TradeCache{
		cache: cache.New(ttl, ttl*2),
	}
}

// FilterNew 未取得の約定のみ返し、記憶する
func (c *TradeCache) FilterNew(p *model.CurrencyPair, trades []model.Trade) []model.Trade {
	fresh := []model.Trade{}
	for _, t := range trades {
		key := fmt.Sprintf("%s:%d", p.String(), t.ID)
		if err := c.cache.Add(key, struct{}{}, cache.DefaultExpiration); err != nil {
			continue
		}
		fresh = append(fresh, t)
	}
	return fresh
}

// Count 記憶している件数
func (c *TradeCache) Count() int {
	return c.cache.ItemCount()
}
