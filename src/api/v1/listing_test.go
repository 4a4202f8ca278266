package v1

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasySwapMarket/src/model"
)

func TestToListingInfo(t *testing.T) {
	listing := &model.Listing{
		Id:            7,
		Seller:        "0x00000000000000000000000000000000000000b1",
		NftAddress:    "0x00000000000000000000000000000000000000c1",
		PayToken:      "0x0000000000000000000000000000000000000000",
		TokenId:       "42",
		Quantity:      2,
		Price:         decimal.New(1, 18),
		Deadline:      1700003600,
		NftKind:       model.NftKindErc1155,
		SellKind:      model.SellKindAuction,
		Active:        true,
		HighestBidder: "0x00000000000000000000000000000000000000b2",
		HighestBid:    decimal.New(11, 17),
		CreateTime:    1700000000,
		UpdateTime:    1700000100,
	}

	info := toListingInfo(listing)
	require.Equal(t, listing.Id, info.Id)
	require.Equal(t, listing.Seller, info.Seller)
	require.Equal(t, listing.NftAddress, info.NftAddress)
	require.Equal(t, listing.PayToken, info.PayToken)
	require.Equal(t, listing.TokenId, info.TokenId)
	require.Equal(t, listing.Quantity, info.Quantity)
	require.True(t, info.Price.Equal(listing.Price))
	require.Equal(t, listing.Deadline, info.Deadline)
	require.Equal(t, listing.NftKind, info.NftKind)
	require.Equal(t, listing.SellKind, info.SellKind)
	require.Equal(t, listing.Active, info.Active)
	require.Equal(t, listing.HighestBidder, info.HighestBidder)
	require.True(t, info.HighestBid.Equal(listing.HighestBid))
	require.Equal(t, listing.CreateTime, info.CreateTime)
}
