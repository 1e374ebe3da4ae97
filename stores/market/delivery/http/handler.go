package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/base/delivery"
	"github.com/rsandx/oasis-nft-port/service/cache"
	authMiddleware "github.com/rsandx/oasis-nft-port/stores/auth/delivery/http/middleware"

	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/listing"
	"github.com/rsandx/oasis-nft-port/domain/token"
)

const (
	marketItemsCacheKey = "market:items"
	marketItemsCacheTtl = 15 * time.Second
)

// MarketItem is the public listing view, joined with the token record so
// storefronts render without a second round trip.
type MarketItem struct {
	listing.Listing
	TokenUri string `json:"tokenUri"`
}

type handler struct {
	market listing.MarketUsecase
	token  token.Usecase
	cache  cache.Service
	symbol string
}

// New registers the market ledger endpoints. The open-market view is
// public; everything that acts for a wallet sits behind auth.
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, market listing.MarketUsecase, token token.Usecase, cache cache.Service, symbol string) {
	h := &handler{market, token, cache, symbol}

	g := e.Group("/market")

	g.GET("/fee", h.getFee)
	g.GET("/items", h.getMarketItems)
	g.GET("/my-nfts", h.getMyNFTs, authMiddleware.Auth())
	g.GET("/my-listings", h.getMyListings, authMiddleware.Auth())
	g.POST("/list", h.list, authMiddleware.Auth())
	g.POST("/delist", h.delist, authMiddleware.Auth())
	g.POST("/buy", h.buy, authMiddleware.Auth())
}

func (h *handler) getFee(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	res := struct {
		ListingFee decimal.Decimal `json:"listingFee"`
		Symbol     string          `json:"symbol"`
	}{h.market.ListingFee(context), h.symbol}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getMarketItems(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	if cached, err := h.cache.Get(context, marketItemsCacheKey); err == nil {
		items := []*MarketItem{}
		if err := json.Unmarshal(cached, &items); err == nil {
			return delivery.MakeJsonResp(c, http.StatusOK, items)
		}
	}

	listings, err := h.market.FetchMarketItems(context)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}

	items, err := h.joinTokenUris(context, listings)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}

	if raw, err := json.Marshal(items); err == nil {
		if err := h.cache.Set(context, marketItemsCacheKey, raw, marketItemsCacheTtl); err != nil {
			context.WithField("err", err).Warn("cache.Set failed")
		}
	}

	return delivery.MakeJsonResp(c, http.StatusOK, items)
}

func (h *handler) getMyNFTs(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	owner := c.Get("address").(domain.Address)

	tokens, err := h.market.FetchMyNFTs(context, owner)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, tokens)
}

func (h *handler) getMyListings(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	seller := c.Get("address").(domain.Address)

	listings, err := h.market.FetchMyListings(context, seller)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}

	items, err := h.joinTokenUris(context, listings)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, items)
}

func (h *handler) list(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	seller := c.Get("address").(domain.Address)

	type params struct {
		TokenId domain.TokenId `json:"tokenId" validate:"required"`
		Price   string         `json:"price" validate:"required"`
		Fee     string         `json:"fee" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return delivery.MakeErrResp(c, domain.ErrBadParamInput)
	}
	fee, err := decimal.NewFromString(p.Fee)
	if err != nil {
		return delivery.MakeErrResp(c, domain.ErrBadParamInput)
	}

	created, err := h.market.List(context, seller, p.TokenId, price, fee)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}

	h.dropMarketItemsCache(context)
	return delivery.MakeJsonResp(c, http.StatusCreated, created)
}

func (h *handler) delist(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	seller := c.Get("address").(domain.Address)

	type params struct {
		ItemId domain.ItemId `json:"itemId" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.market.Delist(context, seller, p.ItemId); err != nil {
		return delivery.MakeErrResp(c, err)
	}

	h.dropMarketItemsCache(context)
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) buy(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	buyer := c.Get("address").(domain.Address)

	type params struct {
		ItemId domain.ItemId `json:"itemId" validate:"required"`
		Amount string        `json:"amount" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return delivery.MakeErrResp(c, domain.ErrBadParamInput)
	}

	sold, err := h.market.Buy(context, buyer, p.ItemId, amount)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}

	h.dropMarketItemsCache(context)
	return delivery.MakeJsonResp(c, http.StatusOK, sold)
}

func (h *handler) joinTokenUris(context ctx.Ctx, listings []*listing.Listing) ([]*MarketItem, error) {
	items := make([]*MarketItem, 0, len(listings))
	for _, l := range listings {
		tokenUri, err := h.token.TokenURI(context, l.TokenId)
		if err != nil {
			context.WithField("err", err).WithField("tokenId", l.TokenId).Error("token.TokenURI failed")
			return nil, err
		}
		items = append(items, &MarketItem{Listing: *l, TokenUri: tokenUri})
	}
	return items, nil
}

func (h *handler) dropMarketItemsCache(context ctx.Ctx) {
	if err := h.cache.Del(context, marketItemsCacheKey); err != nil {
		context.WithField("err", err).Warn("cache.Del failed")
	}
}
